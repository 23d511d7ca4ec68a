package registry

// catalog is the compiled-in domain table: 24 branded domains across the 8
// categories. Presentation layers consume these configs verbatim; nothing in
// this process mutates them.
var catalog = []Config{
	// finance
	{
		Slug: "fundx", Name: "FundX", Category: CategoryFinance, Status: StatusActive,
		Title: "FundX — Smart Treasury", Description: "Treasury and payment tooling for small funds.",
		Theme:   "midnight",
		Strings: map[string]string{"en.tagline": "Your capital, orchestrated", "es.tagline": "Tu capital, orquestado"},
		Routes:  []string{"/", "/products", "/pricing", "/pay"},
		Related: []string{"paygrid", "wealthnest"},
	},
	{
		Slug: "paygrid", Name: "PayGrid", Category: CategoryFinance, Status: StatusActive,
		Title: "PayGrid — Payments Mesh", Description: "Cross-border settlement rails for merchants.",
		Theme:   "slate",
		Strings: map[string]string{"en.tagline": "Every rail, one grid"},
		Routes:  []string{"/", "/rails", "/docs", "/pay"},
		Related: []string{"fundx", "tradepost"},
	},
	{
		Slug: "wealthnest", Name: "WealthNest", Category: CategoryFinance, Status: StatusComingSoon,
		Title: "WealthNest — Private Wealth", Description: "Digital private-banking workspace.",
		Theme:  "ivory",
		Routes: []string{"/", "/waitlist"},
	},

	// realestate
	{
		Slug: "estatia", Name: "Estatia", Category: CategoryRealEstate, Status: StatusActive,
		Title: "Estatia — Property Marketplace", Description: "Listings and escrow for residential property.",
		Theme:   "terracotta",
		Strings: map[string]string{"en.tagline": "Find home, settle safely"},
		Routes:  []string{"/", "/listings", "/agents", "/pay"},
		Related: []string{"brickyard", "homeharbor"},
	},
	{
		Slug: "brickyard", Name: "Brickyard", Category: CategoryRealEstate, Status: StatusActive,
		Title: "Brickyard — Commercial Property", Description: "Commercial lease and purchase workflows.",
		Theme:   "brick",
		Routes:  []string{"/", "/portfolio", "/pay"},
		Related: []string{"estatia"},
	},
	{
		Slug: "homeharbor", Name: "HomeHarbor", Category: CategoryRealEstate, Status: StatusMaintenance,
		Title: "HomeHarbor — Rentals", Description: "Long-term rental management.",
		Theme:  "harbor",
		Routes: []string{"/", "/status"},
	},

	// travel
	{
		Slug: "skytrail", Name: "SkyTrail", Category: CategoryTravel, Status: StatusActive,
		Title: "SkyTrail — Flight Deals", Description: "Curated flight and multi-stop routing.",
		Theme:   "azure",
		Strings: map[string]string{"en.tagline": "Chart your sky"},
		Routes:  []string{"/", "/routes", "/deals", "/pay"},
		Related: []string{"wanderow", "portofcall"},
	},
	{
		Slug: "wanderow", Name: "Wanderow", Category: CategoryTravel, Status: StatusActive,
		Title: "Wanderow — Experiences", Description: "Local experiences and guided tours.",
		Theme:   "moss",
		Routes:  []string{"/", "/experiences", "/pay"},
		Related: []string{"skytrail"},
	},
	{
		Slug: "portofcall", Name: "Port of Call", Category: CategoryTravel, Status: StatusActive,
		Title: "Port of Call — Cruises", Description: "Cruise bookings and shore excursions.",
		Theme:   "navy",
		Routes:  []string{"/", "/voyages", "/pay"},
		Related: []string{"skytrail", "wanderow"},
	},

	// commerce
	{
		Slug: "marketden", Name: "MarketDen", Category: CategoryCommerce, Status: StatusActive,
		Title: "MarketDen — Curated Goods", Description: "Independent maker marketplace.",
		Theme:   "amber",
		Strings: map[string]string{"en.tagline": "Made by hands you can name"},
		Routes:  []string{"/", "/shop", "/makers", "/pay"},
		Related: []string{"cartwise", "tradepost"},
	},
	{
		Slug: "cartwise", Name: "CartWise", Category: CategoryCommerce, Status: StatusActive,
		Title: "CartWise — Price Intelligence", Description: "Price tracking and group buying.",
		Theme:   "lime",
		Routes:  []string{"/", "/watchlists", "/pay"},
		Related: []string{"marketden"},
	},
	{
		Slug: "tradepost", Name: "TradePost", Category: CategoryCommerce, Status: StatusActive,
		Title: "TradePost — B2B Exchange", Description: "Wholesale trading desk for SMEs.",
		Theme:   "copper",
		Routes:  []string{"/", "/exchange", "/pay"},
		Related: []string{"marketden", "paygrid"},
	},

	// network
	{
		Slug: "linkfield", Name: "LinkField", Category: CategoryNetwork, Status: StatusActive,
		Title: "LinkField — Professional Graph", Description: "Industry networking and referrals.",
		Theme:   "steel",
		Routes:  []string{"/", "/graph", "/events", "/pay"},
		Related: []string{"meshwork", "signalbay"},
	},
	{
		Slug: "meshwork", Name: "Meshwork", Category: CategoryNetwork, Status: StatusActive,
		Title: "Meshwork — Community Infra", Description: "Community mesh hosting and tooling.",
		Theme:   "graphite",
		Routes:  []string{"/", "/nodes", "/pay"},
		Related: []string{"linkfield"},
	},
	{
		Slug: "signalbay", Name: "SignalBay", Category: CategoryNetwork, Status: StatusComingSoon,
		Title: "SignalBay — Broadcast Rooms", Description: "Audio rooms for professional circles.",
		Theme:  "teal",
		Routes: []string{"/", "/waitlist"},
	},

	// tech
	{
		Slug: "bytecraft", Name: "ByteCraft", Category: CategoryTech, Status: StatusActive,
		Title: "ByteCraft — Dev Studio", Description: "Productized software development sprints.",
		Theme:   "carbon",
		Strings: map[string]string{"en.tagline": "Ship the thing"},
		Routes:  []string{"/", "/sprints", "/pay"},
		Related: []string{"stacklane", "quantumly"},
	},
	{
		Slug: "stacklane", Name: "StackLane", Category: CategoryTech, Status: StatusActive,
		Title: "StackLane — Infra Reviews", Description: "Architecture and cost reviews on demand.",
		Theme:   "indigo",
		Routes:  []string{"/", "/reviews", "/pay"},
		Related: []string{"bytecraft"},
	},
	{
		Slug: "quantumly", Name: "Quantumly", Category: CategoryTech, Status: StatusComingSoon,
		Title: "Quantumly — Research Lab", Description: "Applied research subscriptions.",
		Theme:  "violet",
		Routes: []string{"/", "/waitlist"},
	},

	// elite
	{
		Slug: "crownline", Name: "Crownline", Category: CategoryElite, Status: StatusActive,
		Title: "Crownline — Concierge", Description: "Members-only concierge services.",
		Theme:   "gold",
		Routes:  []string{"/", "/membership", "/pay"},
		Related: []string{"vaultier", "primecircle"},
	},
	{
		Slug: "vaultier", Name: "Vaultier", Category: CategoryElite, Status: StatusActive,
		Title: "Vaultier — Collectibles Vault", Description: "Vaulting and trading for collectibles.",
		Theme:   "onyx",
		Routes:  []string{"/", "/vault", "/pay"},
		Related: []string{"crownline"},
	},
	{
		Slug: "primecircle", Name: "PrimeCircle", Category: CategoryElite, Status: StatusActive,
		Title: "PrimeCircle — Invite Network", Description: "Invitation-only business circle.",
		Theme:   "pearl",
		Routes:  []string{"/", "/circle", "/pay"},
		Related: []string{"crownline", "linkfield"},
	},

	// hub
	{
		Slug: "centralhub", Name: "Central Hub", Category: CategoryHub, Status: StatusActive,
		Title: "Central Hub — The Portal", Description: "Entry point linking every domain in the family.",
		Theme:   "aurora",
		Strings: map[string]string{"en.tagline": "Every door, one hallway"},
		Routes:  []string{"/", "/domains", "/about"},
		Related: []string{"fundx", "estatia", "skytrail", "marketden", "linkfield", "bytecraft", "crownline"},
	},
	{
		Slug: "connecta", Name: "Connecta", Category: CategoryHub, Status: StatusActive,
		Title: "Connecta — Cross-Domain Account", Description: "Single account across the portal family.",
		Theme:   "aurora",
		Routes:  []string{"/", "/account"},
		Related: []string{"centralhub"},
	},
	{
		Slug: "gateway24", Name: "Gateway24", Category: CategoryHub, Status: StatusActive,
		Title: "Gateway24 — Status & Support", Description: "Support desk and status pages for all domains.",
		Theme:   "aurora",
		Routes:  []string{"/", "/status", "/support"},
		Related: []string{"centralhub"},
	},
}
