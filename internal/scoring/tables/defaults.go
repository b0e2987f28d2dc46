package tables

import "scoutscore_backend/internal/scoring/domain"

// Default returns the compiled-in scoring tables. Operators can
// override any section with YAML files (see Load); these values are the
// baseline every deployment starts from. Maps are copied so overrides
// never mutate the compiled-in baseline.
func Default() *Tables {
	return &Tables{
		V5Neutral:          neutralV5Weights,
		V5ByIndustry:       copyMap(v5WeightsByIndustry),
		DefaultFeatures:    defaultFeatureWeights,
		V4:                 defaultV4Weights,
		PersonasByIndustry: copyMap(personasByIndustry),
		GenericPersonas:    genericPersonas,
		CTAsByIndustry:     copyMap(ctasByIndustry),
		GenericCTAs:        genericCTAs,
		Emotions:           emotionSets,
		RiskFamilies:       riskFamilies,
		Keywords:           defaultKeywords,
		CuratedPatterns:    curatedPatterns,
	}
}

func copyMap[V any](src map[domain.Industry]V) map[domain.Industry]V {
	dst := make(map[domain.Industry]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// neutralV5Weights is the profile used when no industry applies or when
// industry isolation forces the neutral fallback.
var neutralV5Weights = V5Weights{
	BaseScore:            0.40,
	BehavioralMomentum:   0.20,
	SocialInfluence:      0.15,
	OpportunityReadiness: 0.15,
	PatternMatch:         0.10,
}

// Per-industry 5-dimension weights. Each row sums to 1.0.
// Relationship-driven verticals (mlm, coaching) lean on social influence;
// transactional ones (ecommerce, loans) lean on readiness and momentum.
var v5WeightsByIndustry = map[domain.Industry]V5Weights{
	domain.IndustryMLM: {
		BaseScore:            0.30,
		BehavioralMomentum:   0.20,
		SocialInfluence:      0.25, // recruiting runs on networks
		OpportunityReadiness: 0.15,
		PatternMatch:         0.10,
	},
	domain.IndustryInsurance: {
		BaseScore:            0.35,
		BehavioralMomentum:   0.15,
		SocialInfluence:      0.10,
		OpportunityReadiness: 0.20, // life events drive policy purchases
		PatternMatch:         0.20,
	},
	domain.IndustryRealEstate: {
		BaseScore:            0.35,
		BehavioralMomentum:   0.20,
		SocialInfluence:      0.10,
		OpportunityReadiness: 0.25, // long consideration, readiness is the gate
		PatternMatch:         0.10,
	},
	domain.IndustryEcommerce: {
		BaseScore:            0.40,
		BehavioralMomentum:   0.30, // short cycles, momentum is everything
		SocialInfluence:      0.05,
		OpportunityReadiness: 0.15,
		PatternMatch:         0.10,
	},
	domain.IndustryClinic: {
		BaseScore:            0.40,
		BehavioralMomentum:   0.20,
		SocialInfluence:      0.05,
		OpportunityReadiness: 0.25,
		PatternMatch:         0.10,
	},
	domain.IndustryLoans: {
		BaseScore:            0.35,
		BehavioralMomentum:   0.25,
		SocialInfluence:      0.05,
		OpportunityReadiness: 0.25, // urgency-driven
		PatternMatch:         0.10,
	},
	domain.IndustryAuto: {
		BaseScore:            0.40,
		BehavioralMomentum:   0.20,
		SocialInfluence:      0.10,
		OpportunityReadiness: 0.20,
		PatternMatch:         0.10,
	},
	domain.IndustryFranchise: {
		BaseScore:            0.35,
		BehavioralMomentum:   0.15,
		SocialInfluence:      0.15,
		OpportunityReadiness: 0.15,
		PatternMatch:         0.20, // big-ticket, history matters
	},
	domain.IndustryCoaching: {
		BaseScore:            0.30,
		BehavioralMomentum:   0.25,
		SocialInfluence:      0.20,
		OpportunityReadiness: 0.15,
		PatternMatch:         0.10,
	},
	domain.IndustrySaaS: {
		BaseScore:            0.40,
		BehavioralMomentum:   0.25,
		SocialInfluence:      0.05,
		OpportunityReadiness: 0.20,
		PatternMatch:         0.10,
	},
	domain.IndustryTravel: {
		BaseScore:            0.40,
		BehavioralMomentum:   0.25,
		SocialInfluence:      0.10,
		OpportunityReadiness: 0.15,
		PatternMatch:         0.10,
	},
	domain.IndustryBeauty: {
		BaseScore:            0.40,
		BehavioralMomentum:   0.25,
		SocialInfluence:      0.15,
		OpportunityReadiness: 0.10,
		PatternMatch:         0.10,
	},
	domain.IndustryOther: neutralV5Weights,
}

// defaultFeatureWeights is the starting 7-feature vector for v2 before
// any outcome nudges. Sums to 1.0.
var defaultFeatureWeights = FeatureWeights{
	Engagement:       0.20,
	BusinessInterest: 0.20,
	PainPoint:        0.15,
	LifeEvent:        0.10,
	Responsiveness:   0.15,
	Leadership:       0.10,
	Relationship:     0.10,
}

// defaultV4Weights blends the momentum model's 7 dimensions. Sums to 1.0.
var defaultV4Weights = V4Weights{
	Engagement:         0.20,
	Opportunity:        0.20,
	PainPoints:         0.15,
	SocialGraph:        0.10,
	BehaviorMomentum:   0.15,
	RelationshipWarmth: 0.10,
	Freshness:          0.10,
}

// defaultKeywords drives the v1 heuristic and the v2 objection
// detector. The lists mix English and Taglish because that is what the
// captured conversations contain.
var defaultKeywords = KeywordSets{
	Pain: []string{
		"pagod", "problema", "hirap", "stress", "gastos", "utang",
		"walang pera", "tired", "struggling", "frustrated", "burnout",
		"kulang", "bills",
	},
	Opportunity: []string{
		"interested", "gusto ko", "paano sumali", "sign up", "how to join",
		"try ko", "open ako", "extra income", "sideline", "raket",
		"business", "invest",
	},
	Price: []string{
		"magkano", "how much", "presyo", "price", "hm po", "hm sis",
		"cost", "bayad",
	},
	BudgetPhrases: []string{
		"mahal", "too expensive", "walang budget", "wala akong pera",
		"can't afford", "di ko kaya", "kapos", "tight budget",
	},
	TimingPhrases: []string{
		"next time", "sa susunod", "busy ako", "not now", "maybe later",
		"pag may time", "next month", "after ng",
	},
	ApprovalPhrases: []string{
		"ask ko muna", "tatanungin ko", "asawa ko", "my husband",
		"my wife", "mister ko", "misis ko", "parents ko", "papayag ba",
	},
	TrustPositive: []string{
		"thank you", "salamat", "appreciate", "legit pala", "galing",
		"helpful", "sure ako", "trust",
	},
	TrustNegative: []string{
		"scam", "fake", "pyramid", "budol", "niloloko", "suspicious",
		"doubt", "hindi ako naniniwala",
	},
}

// emotionSets defines the six emotional-state signatures scanned by the
// v8 overlay. Keywords contribute 10 points, phrases 20.
var emotionSets = []EmotionSet{
	{
		State:    domain.EmotionAnxious,
		Keywords: []string{"worried", "kabado", "nervous", "takot", "risk", "baka"},
		Phrases:  []string{"what if it fails", "paano kung hindi", "natatakot ako", "baka malugi"},
	},
	{
		State:    domain.EmotionSkeptical,
		Keywords: []string{"scam", "legit", "totoo", "proof", "pyramid", "doubt"},
		Phrases:  []string{"is this legit", "totoo ba ito", "show me proof", "parang scam"},
	},
	{
		State:    domain.EmotionConfused,
		Keywords: []string{"confused", "paano", "how", "hindi ko gets", "explain"},
		Phrases:  []string{"i don't understand", "di ko maintindihan", "can you explain", "ano ulit"},
	},
	{
		State:    domain.EmotionExcited,
		Keywords: []string{"excited", "wow", "grabe", "amazing", "sige", "game"},
		Phrases:  []string{"when can i start", "kailan ako makakapagsimula", "g ako", "let's go"},
	},
	{
		State:    domain.EmotionHopeful,
		Keywords: []string{"sana", "hopefully", "dream", "goal", "someday", "pangarap"},
		Phrases:  []string{"i hope this works", "sana magwork ito", "gusto ko ng pagbabago"},
	},
	{
		State:    domain.EmotionNeutral,
		Keywords: []string{"ok", "sige po", "noted", "i see", "ah ok"},
		Phrases:  []string{},
	},
}

// riskFamilies are the keyword families that raise risk flags in v8.
var riskFamilies = []RiskFamily{
	{Flag: "scam_trauma", Keywords: []string{"scam", "nascam", "budol", "nabudol", "pyramid", "niloko"}},
	{Flag: "fear_of_commitment", Keywords: []string{"commitment", "tali", "contract", "obligasyon", "pressure"}},
	{Flag: "financial_concern", Keywords: []string{"mahal", "budget", "utang", "gastos", "can't afford", "kapos"}},
	{Flag: "time_constraint", Keywords: []string{"busy", "walang oras", "no time", "overtime", "shifting"}},
	{Flag: "decision_maker_issue", Keywords: []string{"asawa", "husband", "wife", "parents", "papayag", "permission"}},
}

// genericPersonas is the fallback persona set for industries without a
// curated library.
var genericPersonas = []Persona{
	{
		Name:     "practical_buyer",
		Keywords: []string{"price", "magkano", "worth it", "quality", "deliver"},
		Phrases:  []string{"how much is it", "is it worth it"},
		Notes:    "Leads with price and proof. Keep messages short and concrete.",
	},
	{
		Name:     "curious_browser",
		Keywords: []string{"info", "details", "paano", "how does it work", "send"},
		Phrases:  []string{"can you send details", "paano ito gumagana"},
		Notes:    "Exploring, not committing. Nurture with low-pressure content.",
	},
	{
		Name:     "relationship_first",
		Keywords: []string{"kamusta", "friend", "salamat", "long time"},
		Phrases:  []string{"kamusta ka na", "good to hear from you"},
		Notes:    "Warmth before pitch. Lead with Taglish messaging for warm prospects.",
	},
}

var personasByIndustry = map[domain.Industry][]Persona{
	domain.IndustryMLM: {
		{
			Name:     "side_hustler",
			Keywords: []string{"extra income", "sideline", "raket", "part time", "gig"},
			Phrases:  []string{"looking for extra income", "pwede bang sideline"},
			Notes:    "Time-poor, income-motivated. Show earnings-per-hour math early.",
		},
		{
			Name:     "aspiring_builder",
			Keywords: []string{"business", "team", "leader", "recruit", "negosyo"},
			Phrases:  []string{"how do i build a team", "gusto ko ng sariling negosyo"},
			Notes:    "Wants the organization, not the product. Pitch the system.",
		},
		{
			Name:     "product_lover",
			Keywords: []string{"effective", "gamit ko", "review", "before after", "resulta"},
			Phrases:  []string{"does it really work", "may resulta ba talaga"},
			Notes:    "Converts on testimony. Send before/after proof.",
		},
	},
	domain.IndustryInsurance: {
		{
			Name:     "family_protector",
			Keywords: []string{"family", "anak", "protection", "emergency", "security"},
			Phrases:  []string{"for my family", "para sa mga anak ko"},
			Notes:    "Risk-framing works; lead with protection gaps, not returns.",
		},
		{
			Name:     "investor_mindset",
			Keywords: []string{"vul", "investment", "returns", "fund", "maturity"},
			Phrases:  []string{"how much will it earn", "magkano ang makukuha ko"},
			Notes:    "Compare against alternatives honestly; they will check.",
		},
	},
	domain.IndustryRealEstate: {
		{
			Name:     "first_home_buyer",
			Keywords: []string{"first home", "pre selling", "downpayment", "pag-ibig", "monthly"},
			Phrases:  []string{"magkano ang monthly", "pwede ba pag-ibig loan"},
			Notes:    "Monthly amortization beats total price in every message.",
		},
		{
			Name:     "ofw_investor",
			Keywords: []string{"ofw", "abroad", "remit", "investment", "rental"},
			Phrases:  []string{"i'm working abroad", "para sa pag uwi ko"},
			Notes:    "Asynchronous buyer. Send complete packets, don't drip.",
		},
	},
	domain.IndustryEcommerce: {
		{
			Name:     "deal_hunter",
			Keywords: []string{"sale", "discount", "promo", "free shipping", "voucher"},
			Phrases:  []string{"may promo ba", "when is the next sale"},
			Notes:    "Converts on urgency and bundles.",
		},
		{
			Name:     "repeat_customer",
			Keywords: []string{"order ulit", "restock", "suki", "last time"},
			Phrases:  []string{"order ulit ako", "same as last time"},
			Notes:    "Protect with loyalty perks; re-engage on restock.",
		},
	},
	domain.IndustryCoaching: {
		{
			Name:     "career_shifter",
			Keywords: []string{"career", "resign", "shift", "new job", "skills"},
			Phrases:  []string{"thinking of resigning", "gusto ko mag shift"},
			Notes:    "Transformation stories over credentials.",
		},
		{
			Name:     "stuck_achiever",
			Keywords: []string{"plateau", "stuck", "next level", "growth", "goal"},
			Phrases:  []string{"i feel stuck", "parang walang progress"},
			Notes:    "Diagnose before prescribing; they distrust generic advice.",
		},
	},
	domain.IndustrySaaS: {
		{
			Name:     "ops_optimizer",
			Keywords: []string{"automate", "manual", "spreadsheet", "process", "integration"},
			Phrases:  []string{"we do this manually", "can it integrate"},
			Notes:    "Demo the exact workflow they described, nothing else.",
		},
		{
			Name:     "budget_owner",
			Keywords: []string{"pricing", "per seat", "contract", "annual", "roi"},
			Phrases:  []string{"what's the pricing", "is there an annual plan"},
			Notes:    "Send pricing without a call gate or lose them.",
		},
	},
}

// genericCTAs covers industries without their own CTA table.
var genericCTAs = []CTADefinition{
	{ID: "soft_intro", Label: "Light check-in message", Temperatures: []domain.Temperature{domain.TemperatureCold, domain.TemperatureWarm}},
	{ID: "value_story", Label: "Share a result or testimonial", Temperatures: []domain.Temperature{domain.TemperatureCold, domain.TemperatureWarm}},
	{ID: "show_price", Label: "Send pricing details", Temperatures: []domain.Temperature{domain.TemperatureWarm, domain.TemperatureHot}},
	{ID: "book_call", Label: "Invite to a quick call", Temperatures: []domain.Temperature{domain.TemperatureWarm, domain.TemperatureHot}},
	{ID: "close_deal", Label: "Direct close / order form", Temperatures: []domain.Temperature{domain.TemperatureHot}},
}

var ctasByIndustry = map[domain.Industry][]CTADefinition{
	domain.IndustryMLM: {
		{ID: "soft_intro", Label: "Kamusta check-in", Temperatures: []domain.Temperature{domain.TemperatureCold, domain.TemperatureWarm}},
		{ID: "value_story", Label: "Income proof story", Temperatures: []domain.Temperature{domain.TemperatureCold, domain.TemperatureWarm}},
		{ID: "show_price", Label: "Package price list", Temperatures: []domain.Temperature{domain.TemperatureWarm, domain.TemperatureHot}},
		{ID: "invite_event", Label: "Invite to online orientation", Temperatures: []domain.Temperature{domain.TemperatureWarm, domain.TemperatureHot}},
		{ID: "close_deal", Label: "Sign-up link", Temperatures: []domain.Temperature{domain.TemperatureHot}},
	},
	domain.IndustryInsurance: {
		{ID: "soft_intro", Label: "Protection check-in", Temperatures: []domain.Temperature{domain.TemperatureCold, domain.TemperatureWarm}},
		{ID: "needs_analysis", Label: "Free needs analysis", Temperatures: []domain.Temperature{domain.TemperatureWarm}},
		{ID: "show_price", Label: "Sample quotation", Temperatures: []domain.Temperature{domain.TemperatureWarm, domain.TemperatureHot}},
		{ID: "book_call", Label: "Policy walkthrough call", Temperatures: []domain.Temperature{domain.TemperatureWarm, domain.TemperatureHot}},
		{ID: "close_deal", Label: "Application form", Temperatures: []domain.Temperature{domain.TemperatureHot}},
	},
	domain.IndustryRealEstate: {
		{ID: "soft_intro", Label: "New listing teaser", Temperatures: []domain.Temperature{domain.TemperatureCold, domain.TemperatureWarm}},
		{ID: "show_price", Label: "Sample computation", Temperatures: []domain.Temperature{domain.TemperatureWarm, domain.TemperatureHot}},
		{ID: "site_visit", Label: "Tripping / site visit invite", Temperatures: []domain.Temperature{domain.TemperatureHot}},
		{ID: "book_call", Label: "Financing options call", Temperatures: []domain.Temperature{domain.TemperatureWarm, domain.TemperatureHot}},
	},
	domain.IndustryEcommerce: {
		{ID: "soft_intro", Label: "New arrival ping", Temperatures: []domain.Temperature{domain.TemperatureCold, domain.TemperatureWarm}},
		{ID: "promo_push", Label: "Limited promo code", Temperatures: []domain.Temperature{domain.TemperatureWarm, domain.TemperatureHot}},
		{ID: "show_price", Label: "Price and shipping quote", Temperatures: []domain.Temperature{domain.TemperatureWarm, domain.TemperatureHot}},
		{ID: "close_deal", Label: "Checkout link", Temperatures: []domain.Temperature{domain.TemperatureHot}},
	},
}

// curatedPatterns is the static library of conversion sequences mined
// from historical closed-won data across tenants.
var curatedPatterns = []ConversionPattern{
	{
		ID:       "mlm-side-hustler-fast",
		Industry: domain.IndustryMLM,
		Persona:  "side_hustler",
		Steps: []string{
			"soft_intro", "value_story", "show_price", "invite_event", "close_deal",
		},
		SuccessRate:        0.34,
		AvgTimeToCloseDays: 9,
		BestDaysOfWeek:     []string{"tuesday", "wednesday", "sunday"},
		BestTimesOfDay:     []string{"19:00-21:00"},
	},
	{
		ID:       "mlm-product-lover",
		Industry: domain.IndustryMLM,
		Persona:  "product_lover",
		Steps:    []string{"value_story", "value_story", "show_price", "close_deal"},
		SuccessRate:        0.41,
		AvgTimeToCloseDays: 6,
		BestDaysOfWeek:     []string{"saturday", "sunday"},
		BestTimesOfDay:     []string{"10:00-12:00", "20:00-22:00"},
	},
	{
		ID:       "insurance-family-protector",
		Industry: domain.IndustryInsurance,
		Persona:  "family_protector",
		Steps:    []string{"soft_intro", "needs_analysis", "show_price", "book_call", "close_deal"},
		SuccessRate:        0.27,
		AvgTimeToCloseDays: 21,
		BestDaysOfWeek:     []string{"monday", "thursday"},
		BestTimesOfDay:     []string{"18:00-20:00"},
	},
	{
		ID:       "realestate-first-home",
		Industry: domain.IndustryRealEstate,
		Persona:  "first_home_buyer",
		Steps:    []string{"soft_intro", "show_price", "book_call", "site_visit"},
		SuccessRate:        0.18,
		AvgTimeToCloseDays: 45,
		BestDaysOfWeek:     []string{"saturday"},
		BestTimesOfDay:     []string{"09:00-11:00"},
	},
	{
		ID:       "ecommerce-deal-hunter",
		Industry: domain.IndustryEcommerce,
		Persona:  "deal_hunter",
		Steps:    []string{"soft_intro", "promo_push", "close_deal"},
		SuccessRate:        0.52,
		AvgTimeToCloseDays: 2,
		BestDaysOfWeek:     []string{"friday", "saturday"},
		BestTimesOfDay:     []string{"12:00-13:00", "21:00-23:00"},
	},
	{
		ID:          "generic-warm-nurture",
		Steps:       []string{"soft_intro", "value_story", "show_price", "close_deal"},
		SuccessRate: 0.22,
		AvgTimeToCloseDays: 14,
		BestDaysOfWeek: []string{"tuesday", "thursday"},
		BestTimesOfDay: []string{"19:00-21:00"},
	},
}
