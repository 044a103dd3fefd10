package models

// DefaultCatalog returns the built-in system with all phase angles at zero.
// Callers randomize phases before starting the simulation.
func DefaultCatalog() Catalog {
	return Catalog{
		Star: Star{Color: "#FACC15", Radius: 20},
		Planets: []Planet{
			{
				ID:          "mercury",
				Name:        "Mercury",
				Color:       "#9CA3AF",
				Radius:      3,
				OrbitRadius: 45,
				Phase:       Phase{Speed: 0.047},
				Description: "The smallest planet and nearest to the Sun, Mercury is only slightly larger than Earth's Moon.",
			},
			{
				ID:          "venus",
				Name:        "Venus",
				Color:       "#FEF08A",
				Radius:      6,
				OrbitRadius: 70,
				Phase:       Phase{Speed: 0.025},
				Description: "Venus has a thick, toxic atmosphere that traps heat, making it the hottest planet in our solar system.",
			},
			{
				ID:          "earth",
				Name:        "Earth",
				Color:       "#3B82F6",
				Radius:      7,
				OrbitRadius: 95,
				Phase:       Phase{Speed: 0.015},
				Description: "Our home, Earth is the only planet known to harbor life, with liquid water on its surface.",
			},
			{
				ID:          "mars",
				Name:        "Mars",
				Color:       "#DC2626",
				Radius:      5,
				OrbitRadius: 130,
				Phase:       Phase{Speed: 0.009},
				Description: "Mars is a cold, desert world with a thin atmosphere and evidence of ancient water.",
			},
			{
				ID:          "jupiter",
				Name:        "Jupiter",
				Color:       "#FB923C",
				Radius:      16,
				OrbitRadius: 180,
				Phase:       Phase{Speed: 0.0055},
				Description: "Jupiter is the largest planet, a gas giant known for its Great Red Spot, a long-lived storm.",
			},
			{
				ID:          "saturn",
				Name:        "Saturn",
				Color:       "#FBBF24",
				Radius:      13,
				OrbitRadius: 225,
				Phase:       Phase{Speed: 0.0039},
				Description: "Known for its stunning rings, Saturn is the sixth planet and second largest in the solar system.",
				Rings: []Ring{
					{InnerRadiusFactor: 1.1, OuterRadiusFactor: 1.45, Color: "#78716C", Opacity: 0.2},  // C ring
					{InnerRadiusFactor: 1.5, OuterRadiusFactor: 1.85, Color: "#D6D3D1", Opacity: 0.75}, // B ring
					{InnerRadiusFactor: 1.9, OuterRadiusFactor: 2.25, Color: "#A8A29E", Opacity: 0.6},  // A ring
					{InnerRadiusFactor: 2.28, OuterRadiusFactor: 2.35, Color: "#78716C", Opacity: 0.3},
				},
			},
			{
				ID:          "uranus",
				Name:        "Uranus",
				Color:       "#22D3EE",
				Radius:      10,
				OrbitRadius: 260,
				Phase:       Phase{Speed: 0.0028},
				Description: "An ice giant, Uranus is the seventh planet and has a unique tilt, orbiting the Sun on its side.",
			},
			{
				ID:          "neptune",
				Name:        "Neptune",
				Color:       "#1D4ED8",
				Radius:      9,
				OrbitRadius: 290,
				Phase:       Phase{Speed: 0.0022},
				Description: "The eighth and most distant major planet, Neptune is a dark, cold, and very windy ice giant.",
			},
		},
		Comet: Comet{
			ID:            "halley",
			Name:          "Halley's Comet",
			Color:         "#A5F3FC",
			Radius:        4,
			SemiMajorAxis: 280,
			SemiMinorAxis: 100,
			TiltDegrees:   35,
			Phase:         Phase{Speed: 0.004},
			Description:   "A famous short-period comet visible from Earth every 75-79 years. It has a highly elliptical, tilted orbit.",
		},
		Moons: []Moon{
			{
				ID:          "the_moon",
				Name:        "The Moon",
				Color:       "#D1D5DB",
				Radius:      2,
				OrbitRadius: 12,
				Phase:       Phase{Speed: 0.1},
				ParentID:    "earth",
				Description: "Earth's only natural satellite, it is the fifth largest satellite in the Solar System.",
			},
			{
				ID:          "io",
				Name:        "Io",
				Color:       "#FDE047",
				Radius:      2.5,
				OrbitRadius: 25,
				Phase:       Phase{Speed: 0.22},
				ParentID:    "jupiter",
				Description: "The most volcanically active body in the solar system, Io is caught in a gravitational tug-of-war with Jupiter.",
			},
			{
				ID:          "europa",
				Name:        "Europa",
				Color:       "#E7E5E4",
				Radius:      2.2,
				OrbitRadius: 32,
				Phase:       Phase{Speed: 0.11},
				ParentID:    "jupiter",
				Description: "A frozen world with a subsurface ocean that could potentially harbor life.",
			},
			{
				ID:          "ganymede",
				Name:        "Ganymede",
				Color:       "#94A3B8",
				Radius:      3.5,
				OrbitRadius: 40,
				Phase:       Phase{Speed: 0.055},
				ParentID:    "jupiter",
				Description: "The largest moon in the solar system, bigger than the planet Mercury, with its own magnetic field.",
			},
			{
				ID:          "callisto",
				Name:        "Callisto",
				Color:       "#6B7280",
				Radius:      3.3,
				OrbitRadius: 50,
				Phase:       Phase{Speed: 0.027},
				ParentID:    "jupiter",
				Description: "One of the most heavily cratered objects in the solar system, indicating a very old and inactive surface.",
			},
			{
				ID:          "titan",
				Name:        "Titan",
				Color:       "#FDBA74",
				Radius:      3.5,
				OrbitRadius: 30, // outside the rings
				Phase:       Phase{Speed: 0.04},
				ParentID:    "saturn",
				Description: "The second-largest moon in the solar system, with a thick nitrogen-rich atmosphere and lakes of liquid methane.",
			},
		},
		Belt: AsteroidBelt{
			ID:          BeltID,
			Name:        "The Asteroid Belt",
			Description: "A torus-shaped region in the Solar System, located roughly between the orbits of Mars and Jupiter.",
			InnerRadius: 145,
			OuterRadius: 165,
		},
	}
}
