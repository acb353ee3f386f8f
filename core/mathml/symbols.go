package mathml

// symbol is the MathML rendering of a control word. An empty tag means the
// command produces no output of its own (\left, \right).
type symbol struct {
	tag   string
	text  string
	width string // mspace only
}

func mi(s string) symbol { return symbol{tag: "mi", text: s} }
func mo(s string) symbol { return symbol{tag: "mo", text: s} }

func space(w string) symbol { return symbol{tag: "mspace", width: w} }

var symbols = map[string]symbol{
	// Greek
	`\alpha`: mi("α"), `\beta`: mi("β"), `\gamma`: mi("γ"), `\delta`: mi("δ"),
	`\epsilon`: mi("ϵ"), `\varepsilon`: mi("ε"), `\zeta`: mi("ζ"), `\eta`: mi("η"),
	`\theta`: mi("θ"), `\vartheta`: mi("ϑ"), `\iota`: mi("ι"), `\kappa`: mi("κ"),
	`\lambda`: mi("λ"), `\mu`: mi("μ"), `\nu`: mi("ν"), `\xi`: mi("ξ"),
	`\pi`: mi("π"), `\rho`: mi("ρ"), `\sigma`: mi("σ"), `\tau`: mi("τ"),
	`\upsilon`: mi("υ"), `\phi`: mi("ϕ"), `\varphi`: mi("φ"), `\chi`: mi("χ"),
	`\psi`: mi("ψ"), `\omega`: mi("ω"),
	`\Gamma`: mi("Γ"), `\Delta`: mi("Δ"), `\Theta`: mi("Θ"), `\Lambda`: mi("Λ"),
	`\Xi`: mi("Ξ"), `\Pi`: mi("Π"), `\Sigma`: mi("Σ"), `\Upsilon`: mi("Υ"),
	`\Phi`: mi("Φ"), `\Psi`: mi("Ψ"), `\Omega`: mi("Ω"),

	// letter-like
	`\infty`: mi("∞"), `\partial`: mi("∂"), `\nabla`: mi("∇"), `\hbar`: mi("ℏ"),
	`\ell`: mi("ℓ"), `\emptyset`: mi("∅"), `\angle`: mi("∠"),

	// binary operators
	`\pm`: mo("±"), `\mp`: mo("∓"), `\times`: mo("×"), `\div`: mo("÷"),
	`\cdot`: mo("⋅"), `\ast`: mo("∗"), `\star`: mo("⋆"), `\circ`: mo("∘"),
	`\bullet`: mo("∙"), `\cup`: mo("∪"), `\cap`: mo("∩"), `\setminus`: mo("∖"),
	`\land`: mo("∧"), `\wedge`: mo("∧"), `\lor`: mo("∨"), `\vee`: mo("∨"),
	`\neg`: mo("¬"), `\oplus`: mo("⊕"), `\otimes`: mo("⊗"),

	// relations
	`\leq`: mo("≤"), `\le`: mo("≤"), `\geq`: mo("≥"), `\ge`: mo("≥"),
	`\neq`: mo("≠"), `\ne`: mo("≠"), `\approx`: mo("≈"), `\equiv`: mo("≡"),
	`\sim`: mo("∼"), `\simeq`: mo("≃"), `\cong`: mo("≅"), `\propto`: mo("∝"),
	`\ll`: mo("≪"), `\gg`: mo("≫"), `\in`: mo("∈"), `\notin`: mo("∉"),
	`\subset`: mo("⊂"), `\subseteq`: mo("⊆"), `\supset`: mo("⊃"), `\supseteq`: mo("⊇"),
	`\perp`: mo("⊥"), `\parallel`: mo("∥"), `\mid`: mo("∣"),

	// arrows
	`\rightarrow`: mo("→"), `\to`: mo("→"), `\leftarrow`: mo("←"), `\gets`: mo("←"),
	`\leftrightarrow`: mo("↔"), `\Rightarrow`: mo("⇒"), `\Leftarrow`: mo("⇐"),
	`\Leftrightarrow`: mo("⇔"), `\implies`: mo("⟹"), `\iff`: mo("⟺"),
	`\mapsto`: mo("↦"), `\longrightarrow`: mo("⟶"), `\longleftarrow`: mo("⟵"),
	`\rightleftharpoons`: mo("⇌"), `\uparrow`: mo("↑"), `\downarrow`: mo("↓"),

	// large operators and quantifiers
	`\sum`: mo("∑"), `\prod`: mo("∏"), `\int`: mo("∫"), `\iint`: mo("∬"),
	`\oint`: mo("∮"), `\forall`: mo("∀"), `\exists`: mo("∃"),

	// punctuation and delimiters
	`\ldots`: mo("…"), `\dots`: mo("…"), `\cdots`: mo("⋯"), `\vdots`: mo("⋮"),
	`\prime`: mo("′"), `\langle`: mo("⟨"), `\rangle`: mo("⟩"),
	`\lfloor`: mo("⌊"), `\rfloor`: mo("⌋"), `\lceil`: mo("⌈"), `\rceil`: mo("⌉"),
	`\{`: mo("{"), `\}`: mo("}"), `\|`: mo("‖"), `\%`: mo("%"), `\$`: mo("$"),
	`\#`: mo("#"), `\&`: mo("&"), `\_`: mo("_"),

	// named functions render upright
	`\sin`: mi("sin"), `\cos`: mi("cos"), `\tan`: mi("tan"), `\cot`: mi("cot"),
	`\sec`: mi("sec"), `\csc`: mi("csc"), `\arcsin`: mi("arcsin"), `\arccos`: mi("arccos"),
	`\arctan`: mi("arctan"), `\sinh`: mi("sinh"), `\cosh`: mi("cosh"), `\tanh`: mi("tanh"),
	`\log`: mi("log"), `\ln`: mi("ln"), `\exp`: mi("exp"), `\lim`: mi("lim"),
	`\max`: mi("max"), `\min`: mi("min"), `\det`: mi("det"), `\gcd`: mi("gcd"),
	`\deg`: mi("deg"),

	// spacing
	`\,`: space("0.167em"), `\:`: space("0.222em"), `\;`: space("0.278em"),
	`\!`: space("-0.167em"), `\ `: space("0.25em"), `\quad`: space("1em"),
	`\qquad`: space("2em"),

	// sizing delimiters; the delimiter itself follows as an ordinary token
	`\left`: {}, `\right`: {}, `\big`: {}, `\Big`: {},
}
