package corpus

import (
	"fmt"

	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/document"
)

// builtinDoc is a compact literal form for the embedded default corpus.
type builtinDoc struct {
	id          string
	name        string
	description string
	keywords    string
	bestFor     string
	tags        []string
	compatTags  []string
	popularity  float64
}

// builtinDocuments returns the embedded documents for a domain, used when
// no corpus file is present.
func builtinDocuments(d domain.Name) ([]document.Document, error) {
	raw, ok := builtinCorpus[d]
	if !ok {
		return nil, domain.ErrUnknownDomain
	}
	docs := make([]document.Document, 0, len(raw))
	for _, b := range raw {
		doc, err := document.New(b.id, d, map[string]string{
			"name":        b.name,
			"description": b.description,
			"keywords":    b.keywords,
			"best_for":    b.bestFor,
		}, b.tags, b.compatTags, b.popularity)
		if err != nil {
			return nil, fmt.Errorf("builtin document %s/%s: %w", d, b.id, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// builtinIncompatibilities returns the embedded tag exclusions used when
// no incompatibilities.csv is present.
func builtinIncompatibilities() [][2]string {
	return [][2]string{
		{"minimal", "bold"},
		{"minimal", "dense"},
		{"brutalist", "pastel"},
		{"brutalist", "soft"},
		{"playful", "corporate"},
		{"dark", "pastel"},
		{"glass", "mono"},
	}
}

var builtinCorpus = map[domain.Name][]builtinDoc{
	domain.Style: {
		{
			id: "minimal-clean", name: "Minimal Clean",
			description: "Generous whitespace, restrained color, content-first hierarchy",
			keywords:    "minimal clean simple whitespace calm landing",
			bestFor:     "saas portfolio content docs",
			tags:        []string{"minimal", "light"},
			compatTags:  []string{"minimal"},
			popularity:  0.95,
		},
		{
			id: "glassmorphism", name: "Glassmorphism",
			description: "Frosted translucent panels over vivid gradient backdrops",
			keywords:    "glassmorphism frosted glass blur gradient depth",
			bestFor:     "saas fintech dashboard",
			tags:        []string{"glass", "gradient"},
			compatTags:  []string{"glass"},
			popularity:  0.7,
		},
		{
			id: "brutalist-raw", name: "Brutalist Raw",
			description: "Unpolished borders, system fonts, stark contrast, honest structure",
			keywords:    "brutalist raw stark bold contrast statement",
			bestFor:     "portfolio content",
			tags:        []string{"brutalist", "bold"},
			compatTags:  []string{"brutalist", "bold"},
			popularity:  0.5,
		},
		{
			id: "dark-noir", name: "Dark Noir",
			description: "Near-black surfaces with luminous accent color and soft glows",
			keywords:    "dark noir night neon glow developer",
			bestFor:     "saas dashboard fintech",
			tags:        []string{"dark"},
			compatTags:  []string{"dark"},
			popularity:  0.85,
		},
		{
			id: "playful-pop", name: "Playful Pop",
			description: "Rounded shapes, springy motion, saturated accents, friendly voice",
			keywords:    "playful fun rounded colorful bouncy friendly",
			bestFor:     "mobile content ecommerce",
			tags:        []string{"playful"},
			compatTags:  []string{"playful"},
			popularity:  0.6,
		},
		{
			id: "corporate-trust", name: "Corporate Trust",
			description: "Structured grids, muted blues, conventional navigation, zero surprises",
			keywords:    "corporate professional enterprise trust serious",
			bestFor:     "fintech saas enterprise",
			tags:        []string{"corporate"},
			compatTags:  []string{"corporate"},
			popularity:  0.75,
		},
	},
	domain.Palette: {
		{
			id: "slate-minimal", name: "Slate Minimal",
			description: "Neutral slate grays with a single restrained indigo accent",
			keywords:    "minimal neutral slate calm muted",
			bestFor:     "saas docs portfolio",
			tags:        []string{"neutral"},
			compatTags:  []string{"minimal"},
			popularity:  0.9,
		},
		{
			id: "electric-bold", name: "Electric Bold",
			description: "High-saturation violet and lime on stark white",
			keywords:    "bold vibrant electric loud saturated",
			bestFor:     "ecommerce mobile content",
			tags:        []string{"vibrant"},
			compatTags:  []string{"bold"},
			popularity:  0.65,
		},
		{
			id: "pastel-soft", name: "Pastel Soft",
			description: "Powdery pinks and blues with low-contrast warmth",
			keywords:    "pastel soft gentle friendly playful",
			bestFor:     "mobile content",
			tags:        []string{"pastel"},
			compatTags:  []string{"pastel", "soft"},
			popularity:  0.55,
		},
		{
			id: "fintech-navy", name: "Fintech Navy",
			description: "Deep navy and emerald signals over crisp paper white",
			keywords:    "navy trust corporate professional finance",
			bestFor:     "fintech enterprise saas",
			tags:        []string{"corporate"},
			compatTags:  []string{"corporate"},
			popularity:  0.8,
		},
		{
			id: "charcoal-ember", name: "Charcoal Ember",
			description: "Charcoal base with amber highlights tuned for dark interfaces",
			keywords:    "dark charcoal amber night contrast",
			bestFor:     "dashboard saas fintech",
			tags:        []string{"dark"},
			compatTags:  []string{"dark"},
			popularity:  0.7,
		},
	},
	domain.Typography: {
		{
			id: "inter-stack", name: "Inter System Stack",
			description: "Inter for UI and prose, tight tracking on display sizes",
			keywords:    "minimal clean modern neutral versatile",
			bestFor:     "saas dashboard docs",
			tags:        []string{"sans"},
			compatTags:  []string{"minimal"},
			popularity:  0.95,
		},
		{
			id: "serif-editorial", name: "Editorial Serif",
			description: "High-contrast serif display over humanist sans body",
			keywords:    "serif editorial elegant refined content",
			bestFor:     "content portfolio",
			tags:        []string{"serif"},
			compatTags:  []string{"soft"},
			popularity:  0.6,
		},
		{
			id: "mono-brutal", name: "Mono Brutal",
			description: "Monospace everywhere, terminal cadence, zero ligatures",
			keywords:    "mono monospace brutalist raw technical developer",
			bestFor:     "portfolio docs",
			tags:        []string{"mono"},
			compatTags:  []string{"mono", "brutalist"},
			popularity:  0.45,
		},
		{
			id: "grotesk-display", name: "Grotesk Display",
			description: "Wide grotesk headlines with a quiet geometric body face",
			keywords:    "grotesk bold display confident statement",
			bestFor:     "ecommerce saas fintech",
			tags:        []string{"sans"},
			compatTags:  []string{"bold"},
			popularity:  0.7,
		},
		{
			id: "rounded-friendly", name: "Rounded Friendly",
			description: "Soft rounded sans with generous line height",
			keywords:    "rounded playful friendly warm approachable",
			bestFor:     "mobile content",
			tags:        []string{"sans"},
			compatTags:  []string{"playful", "soft"},
			popularity:  0.5,
		},
	},
	domain.Layout: {
		{
			id: "hero-features", name: "Hero + Features",
			description: "Classic hero with headline and CTA, then a three-up feature grid and social proof",
			keywords:    "hero features classic landing testimonials",
			bestFor:     "saas marketing product trial demo",
			tags:        []string{"classic"},
			compatTags:  nil,
			popularity:  0.95,
		},
		{
			id: "minimal-single-cta", name: "Minimal Single CTA",
			description: "One headline, one button, nothing else competing for attention",
			keywords:    "minimal single focused landing signup",
			bestFor:     "signup waitlist newsletter",
			tags:        []string{"minimal"},
			compatTags:  []string{"minimal"},
			popularity:  0.7,
		},
		{
			id: "pricing-preview", name: "Pricing Preview",
			description: "Hero flowing straight into a three-tier pricing table with highlighted plan",
			keywords:    "pricing plans tiers table landing",
			bestFor:     "saas purchase subscribe",
			tags:        []string{"pricing"},
			compatTags:  nil,
			popularity:  0.8,
		},
		{
			id: "comparison-table", name: "Comparison Table",
			description: "Side-by-side competitor comparison anchoring an enterprise pitch",
			keywords:    "comparison competitor enterprise table",
			bestFor:     "enterprise fintech demo contact",
			tags:        []string{"comparison"},
			compatTags:  []string{"dense"},
			popularity:  0.55,
		},
		{
			id: "bento-grid", name: "Bento Grid",
			description: "Dense bento grid of product capabilities with varied tile sizes",
			keywords:    "bento grid tiles dense showcase dashboard",
			bestFor:     "saas dashboard product",
			tags:        []string{"bento"},
			compatTags:  []string{"dense"},
			popularity:  0.75,
		},
		{
			id: "product-showcase", name: "Product Showcase",
			description: "Large product gallery with zigzag feature narrative and purchase CTA",
			keywords:    "product gallery showcase zigzag ecommerce",
			bestFor:     "ecommerce purchase download",
			tags:        []string{"product"},
			compatTags:  nil,
			popularity:  0.65,
		},
	},
	domain.Chart: {
		{
			id: "line-trend", name: "Line Trend",
			description: "Time-series line chart for growth and usage trends",
			keywords:    "line trend time series growth metrics dashboard",
			bestFor:     "saas dashboard fintech",
			tags:        []string{"chart"},
			compatTags:  nil,
			popularity:  0.9,
		},
		{
			id: "bar-comparison", name: "Bar Comparison",
			description: "Grouped bars comparing categories or plan features",
			keywords:    "bar comparison categories grouped",
			bestFor:     "dashboard enterprise",
			tags:        []string{"chart"},
			compatTags:  nil,
			popularity:  0.8,
		},
		{
			id: "area-cumulative", name: "Stacked Area",
			description: "Stacked area for cumulative totals and composition over time",
			keywords:    "area stacked cumulative composition",
			bestFor:     "fintech dashboard",
			tags:        []string{"chart"},
			compatTags:  []string{"dense"},
			popularity:  0.6,
		},
		{
			id: "donut-share", name: "Donut Share",
			description: "Donut for part-of-whole shares, capped at five segments",
			keywords:    "donut pie share proportion",
			bestFor:     "dashboard content",
			tags:        []string{"chart"},
			compatTags:  nil,
			popularity:  0.5,
		},
		{
			id: "stat-cards", name: "Stat Cards",
			description: "Big-number stat cards with sparkline context instead of full charts",
			keywords:    "stats numbers sparkline minimal cards",
			bestFor:     "saas landing minimal",
			tags:        []string{"chart"},
			compatTags:  []string{"minimal"},
			popularity:  0.7,
		},
	},
	domain.Stack: {
		{
			id: "nextjs-tailwind", name: "Next.js + Tailwind",
			description: "App-router Next.js with Tailwind utility styling and server components",
			keywords:    "nextjs react tailwind ssr app router",
			bestFor:     "saas marketing ecommerce",
			tags:        []string{"react"},
			compatTags:  nil,
			popularity:  0.95,
		},
		{
			id: "react-vite", name: "React + Vite SPA",
			description: "Client-rendered React with Vite tooling for app-like surfaces",
			keywords:    "react vite spa client dashboard",
			bestFor:     "dashboard saas",
			tags:        []string{"react"},
			compatTags:  nil,
			popularity:  0.8,
		},
		{
			id: "sveltekit", name: "SvelteKit",
			description: "SvelteKit with server-side rendering and minimal client payload",
			keywords:    "svelte sveltekit lightweight fast",
			bestFor:     "content portfolio saas",
			tags:        []string{"svelte"},
			compatTags:  nil,
			popularity:  0.6,
		},
		{
			id: "astro-content", name: "Astro Content Site",
			description: "Astro islands for content-heavy, mostly static pages",
			keywords:    "astro static islands content blog",
			bestFor:     "content portfolio docs",
			tags:        []string{"astro"},
			compatTags:  nil,
			popularity:  0.55,
		},
		{
			id: "vue-nuxt", name: "Vue + Nuxt",
			description: "Nuxt with Vue single-file components and hybrid rendering",
			keywords:    "vue nuxt hybrid ssr",
			bestFor:     "ecommerce saas",
			tags:        []string{"vue"},
			compatTags:  nil,
			popularity:  0.65,
		},
	},
	domain.UX: {
		{
			id: "skeleton-loading", name: "Skeleton Loading",
			description: "Skeleton screens over spinners to cut perceived wait",
			keywords:    "loading skeleton perceived performance dashboard",
			bestFor:     "dashboard saas",
			tags:        []string{"loading"},
			compatTags:  nil,
			popularity:  0.85,
		},
		{
			id: "contrast-a11y", name: "Contrast Accessibility",
			description: "4.5:1 minimum text contrast and visible focus states",
			keywords:    "accessibility contrast a11y focus landing",
			bestFor:     "saas enterprise fintech content",
			tags:        []string{"a11y"},
			compatTags:  nil,
			popularity:  0.9,
		},
		{
			id: "inline-validation", name: "Inline Form Validation",
			description: "Validate on blur with inline messages, never only on submit",
			keywords:    "forms validation inline signup checkout",
			bestFor:     "signup checkout contact",
			tags:        []string{"forms"},
			compatTags:  nil,
			popularity:  0.8,
		},
		{
			id: "sticky-cta", name: "Sticky CTA Bar",
			description: "Persistent CTA bar appearing after the hero scrolls away",
			keywords:    "cta sticky scroll conversion landing",
			bestFor:     "purchase signup trial",
			tags:        []string{"conversion"},
			compatTags:  []string{"dense"},
			popularity:  0.6,
		},
		{
			id: "reduced-motion", name: "Reduced Motion",
			description: "Respect prefers-reduced-motion and keep animations under 200ms",
			keywords:    "animation motion accessibility calm minimal",
			bestFor:     "content portfolio saas",
			tags:        []string{"animation"},
			compatTags:  []string{"minimal"},
			popularity:  0.7,
		},
	},
	domain.Component: {
		{
			id: "pricing-table", name: "Pricing Table",
			description: "Three-tier pricing cards with a highlighted recommended plan",
			keywords:    "pricing plans tiers cards landing",
			bestFor:     "saas purchase subscribe",
			tags:        []string{"pricing"},
			compatTags:  nil,
			popularity:  0.9,
		},
		{
			id: "testimonial-wall", name: "Testimonial Wall",
			description: "Masonry wall of short customer quotes with avatars",
			keywords:    "testimonials social proof quotes landing",
			bestFor:     "saas marketing ecommerce",
			tags:        []string{"social"},
			compatTags:  []string{"dense"},
			popularity:  0.75,
		},
		{
			id: "faq-accordion", name: "FAQ Accordion",
			description: "Collapsible FAQ with five to ten objection-handling answers",
			keywords:    "faq questions accordion objections",
			bestFor:     "pricing checkout contact",
			tags:        []string{"faq"},
			compatTags:  nil,
			popularity:  0.8,
		},
		{
			id: "stats-banner", name: "Stats Banner",
			description: "Single-row banner of headline metrics for instant credibility",
			keywords:    "stats numbers banner proof minimal",
			bestFor:     "saas fintech enterprise",
			tags:        []string{"social"},
			compatTags:  []string{"minimal"},
			popularity:  0.7,
		},
		{
			id: "signup-hero-form", name: "Signup Hero Form",
			description: "Email capture form embedded directly in the hero",
			keywords:    "signup form email capture waitlist hero",
			bestFor:     "signup waitlist newsletter",
			tags:        []string{"forms"},
			compatTags:  nil,
			popularity:  0.85,
		},
	},
}
