package extract

import (
	"regexp"

	"github.com/uxforge/designrec/internal/domain/signal"
)

// rule maps a brief pattern to a signal value with a base confidence.
// Rules are evaluated independently; several may fire for the same key and
// the extractor keeps the winner.
type rule struct {
	re         *regexp.Regexp
	key        signal.Key
	value      string
	confidence float64
}

func r(pattern string, key signal.Key, value string, confidence float64) rule {
	return rule{
		re:         regexp.MustCompile(`\b(?:` + pattern + `)\b`),
		key:        key,
		value:      value,
		confidence: confidence,
	}
}

// rules is the ordered extraction table. Order is the last tie-breaker, so
// more specific patterns come first within a key.
var rules = []rule{
	// product_type
	r(`saas|software as a service`, signal.ProductType, "saas", 0.9),
	r(`fintech|banking|payments?`, signal.ProductType, "fintech", 0.9),
	r(`e-?commerce|online (?:shop|store)|storefront`, signal.ProductType, "ecommerce", 0.9),
	r(`portfolio`, signal.ProductType, "portfolio", 0.85),
	r(`blog|newsletter`, signal.ProductType, "content", 0.75),
	r(`dashboard|analytics|admin panel`, signal.ProductType, "dashboard", 0.7),
	r(`mobile app`, signal.ProductType, "mobile", 0.7),
	r(`startup|product`, signal.ProductType, "saas", 0.4),

	// style_pref
	r(`glassmorphism|glassy|frosted glass`, signal.StylePref, "glassmorphism", 0.95),
	r(`neumorphism|soft ui`, signal.StylePref, "neumorphism", 0.95),
	r(`brutalist|brutalism`, signal.StylePref, "brutalist", 0.95),
	r(`bento(?: grid)?`, signal.StylePref, "bento", 0.9),
	r(`minimal(?:ist|ism)?|clean|simple`, signal.StylePref, "minimal", 0.85),
	r(`retro|vintage|nostalgic`, signal.StylePref, "retro", 0.85),
	r(`playful|fun|whimsical`, signal.StylePref, "playful", 0.8),
	r(`dark(?: mode| theme)?|noir`, signal.StylePref, "dark", 0.7),
	r(`corporate|professional|enterprise`, signal.StylePref, "corporate", 0.7),
	r(`bold|vibrant|loud`, signal.StylePref, "bold", 0.65),

	// page_type
	r(`landing page|landing`, signal.PageType, "landing", 0.9),
	r(`pricing (?:page|table)|pricing`, signal.PageType, "pricing", 0.8),
	r(`docs|documentation`, signal.PageType, "docs", 0.8),
	r(`onboarding`, signal.PageType, "onboarding", 0.8),
	r(`checkout`, signal.PageType, "checkout", 0.8),
	r(`dashboard`, signal.PageType, "dashboard", 0.6),
	r(`homepage|home page`, signal.PageType, "landing", 0.6),

	// cta_goal
	r(`sign ?ups?|register|create an? account`, signal.CTAGoal, "signup", 0.9),
	r(`wait ?list`, signal.CTAGoal, "waitlist", 0.9),
	r(`free trial|trial`, signal.CTAGoal, "trial", 0.85),
	r(`book a (?:demo|call)|request a demo|demo`, signal.CTAGoal, "demo", 0.8),
	r(`buy|purchase|order`, signal.CTAGoal, "purchase", 0.8),
	r(`subscribe|subscription`, signal.CTAGoal, "subscribe", 0.8),
	r(`download`, signal.CTAGoal, "download", 0.8),
	r(`contact (?:us|sales)`, signal.CTAGoal, "contact", 0.75),

	// framework
	r(`next\.?js`, signal.Framework, "nextjs", 0.95),
	r(`sveltekit|svelte`, signal.Framework, "svelte", 0.95),
	r(`nuxt|vue`, signal.Framework, "vue", 0.95),
	r(`astro`, signal.Framework, "astro", 0.95),
	r(`solid\.?js`, signal.Framework, "solidjs", 0.95),
	r(`angular`, signal.Framework, "angular", 0.95),
	r(`remix`, signal.Framework, "remix", 0.95),
	r(`react`, signal.Framework, "react", 0.85),
	r(`tailwind`, signal.Framework, "react", 0.4),
}
