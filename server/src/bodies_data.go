// server/src/bodies_data.go
package main

// InitSolarSystemBodies returns the static solar-system table. IDs are the
// JPL Horizons numeric designations, so a registry id can be handed straight
// to the live ephemeris service as a COMMAND value.
//
// Planet elements are mean J2000 values; moon elements are parent-centric.
// Orbital periods are in days, negative for retrograde orbits.
func InitSolarSystemBodies() []CelestialBody {
	return []CelestialBody{
		// Sun: degenerate orbit, never routed through the generator in practice
		{
			ID:       "10",
			Name:     "Sun",
			Kind:     KindStar,
			MassKg:   1.989e30,
			RadiusKm: 695700.0,
		},

		// PLANETS
		{
			ID:                "199",
			Name:              "Mercury",
			Kind:              KindPlanet,
			SemiMajorAxisKm:   57909050,
			Eccentricity:      0.20563,
			InclinationDeg:    7.005,
			OrbitalPeriodDays: 87.969,
			MassKg:            3.301e23,
			RadiusKm:          2439.7,
		},
		{
			ID:                "299",
			Name:              "Venus",
			Kind:              KindPlanet,
			SemiMajorAxisKm:   108208000,
			Eccentricity:      0.00677,
			InclinationDeg:    3.3946,
			OrbitalPeriodDays: 224.701,
			MassKg:            4.867e24,
			RadiusKm:          6051.8,
		},
		{
			ID:                "399",
			Name:              "Earth",
			Kind:              KindPlanet,
			SemiMajorAxisKm:   AU,
			Eccentricity:      0.0167,
			InclinationDeg:    0.0,
			OrbitalPeriodDays: 365.25,
			MassKg:            5.972e24,
			RadiusKm:          6371.0,
		},
		{
			ID:                "499",
			Name:              "Mars",
			Kind:              KindPlanet,
			SemiMajorAxisKm:   227939200,
			Eccentricity:      0.0934,
			InclinationDeg:    1.850,
			OrbitalPeriodDays: 686.980,
			MassKg:            6.417e23,
			RadiusKm:          3389.5,
		},
		{
			ID:                "599",
			Name:              "Jupiter",
			Kind:              KindPlanet,
			SemiMajorAxisKm:   778570000,
			Eccentricity:      0.0489,
			InclinationDeg:    1.304,
			OrbitalPeriodDays: 4332.589,
			MassKg:            1.898e27,
			RadiusKm:          69911,
		},
		{
			ID:                "699",
			Name:              "Saturn",
			Kind:              KindPlanet,
			SemiMajorAxisKm:   1433530000,
			Eccentricity:      0.0565,
			InclinationDeg:    2.485,
			OrbitalPeriodDays: 10759.22,
			MassKg:            5.683e26,
			RadiusKm:          58232,
		},
		{
			ID:                "799",
			Name:              "Uranus",
			Kind:              KindPlanet,
			SemiMajorAxisKm:   2872460000,
			Eccentricity:      0.0457,
			InclinationDeg:    0.772,
			OrbitalPeriodDays: 30688.5,
			MassKg:            8.681e25,
			RadiusKm:          25362,
		},
		{
			ID:                "899",
			Name:              "Neptune",
			Kind:              KindPlanet,
			SemiMajorAxisKm:   4495060000,
			Eccentricity:      0.0113,
			InclinationDeg:    1.770,
			OrbitalPeriodDays: 60182,
			MassKg:            1.024e26,
			RadiusKm:          24622,
		},

		// DWARF PLANETS
		{
			ID:                "999",
			Name:              "Pluto",
			Kind:              KindDwarfPlanet,
			SemiMajorAxisKm:   5906380000,
			Eccentricity:      0.2488,
			InclinationDeg:    17.16,
			OrbitalPeriodDays: 90560,
			MassKg:            1.303e22,
			RadiusKm:          1188.3,
		},

		// MOONS
		// Earth
		{
			ID:                "301",
			Name:              "Moon",
			Kind:              KindMoon,
			ParentID:          "399",
			SemiMajorAxisKm:   384400,
			Eccentricity:      0.0549,
			InclinationDeg:    5.145,
			OrbitalPeriodDays: 27.3217,
			MassKg:            7.342e22,
			RadiusKm:          1737.4,
		},

		// Mars
		{
			ID:                "401",
			Name:              "Phobos",
			Kind:              KindMoon,
			ParentID:          "499",
			SemiMajorAxisKm:   9377,
			Eccentricity:      0.0151,
			InclinationDeg:    1.093,
			OrbitalPeriodDays: 0.3189,
			MassKg:            1.066e16,
			RadiusKm:          11.27,
		},
		{
			ID:                "402",
			Name:              "Deimos",
			Kind:              KindMoon,
			ParentID:          "499",
			SemiMajorAxisKm:   23460,
			Eccentricity:      0.00033,
			InclinationDeg:    0.93,
			OrbitalPeriodDays: 1.263,
			MassKg:            1.48e15,
			RadiusKm:          6.2,
		},

		// Jupiter
		{
			ID:                "501",
			Name:              "Io",
			Kind:              KindMoon,
			ParentID:          "599",
			SemiMajorAxisKm:   421700,
			Eccentricity:      0.0041,
			InclinationDeg:    0.036,
			OrbitalPeriodDays: 1.769,
			MassKg:            8.93e22,
			RadiusKm:          1821.6,
		},
		{
			ID:                "502",
			Name:              "Europa",
			Kind:              KindMoon,
			ParentID:          "599",
			SemiMajorAxisKm:   671100,
			Eccentricity:      0.009,
			InclinationDeg:    0.466,
			OrbitalPeriodDays: 3.551,
			MassKg:            4.8e22,
			RadiusKm:          1560.8,
		},
		{
			ID:                "503",
			Name:              "Ganymede",
			Kind:              KindMoon,
			ParentID:          "599",
			SemiMajorAxisKm:   1070400,
			Eccentricity:      0.0013,
			InclinationDeg:    0.177,
			OrbitalPeriodDays: 7.155,
			MassKg:            1.48e23,
			RadiusKm:          2634.1,
		},
		{
			ID:                "504",
			Name:              "Callisto",
			Kind:              KindMoon,
			ParentID:          "599",
			SemiMajorAxisKm:   1882700,
			Eccentricity:      0.0074,
			InclinationDeg:    0.192,
			OrbitalPeriodDays: 16.689,
			MassKg:            1.076e23,
			RadiusKm:          2410.3,
		},

		// Saturn
		{
			ID:                "601",
			Name:              "Mimas",
			Kind:              KindMoon,
			ParentID:          "699",
			SemiMajorAxisKm:   185520,
			Eccentricity:      0.0196,
			InclinationDeg:    1.574,
			OrbitalPeriodDays: 0.942,
			MassKg:            3.75e19,
			RadiusKm:          198.2,
		},
		{
			ID:                "602",
			Name:              "Enceladus",
			Kind:              KindMoon,
			ParentID:          "699",
			SemiMajorAxisKm:   238040,
			Eccentricity:      0.0047,
			InclinationDeg:    0.009,
			OrbitalPeriodDays: 1.370,
			MassKg:            1.08e20,
			RadiusKm:          252.1,
		},
		{
			ID:                "605",
			Name:              "Rhea",
			Kind:              KindMoon,
			ParentID:          "699",
			SemiMajorAxisKm:   527040,
			Eccentricity:      0.001,
			InclinationDeg:    0.345,
			OrbitalPeriodDays: 4.518,
			MassKg:            2.31e21,
			RadiusKm:          763.8,
		},
		{
			ID:                "606",
			Name:              "Titan",
			Kind:              KindMoon,
			ParentID:          "699",
			SemiMajorAxisKm:   1221870,
			Eccentricity:      0.0288,
			InclinationDeg:    0.348,
			OrbitalPeriodDays: 15.945,
			MassKg:            1.345e23,
			RadiusKm:          2574.7,
		},
		{
			ID:                "608",
			Name:              "Iapetus",
			Kind:              KindMoon,
			ParentID:          "699",
			SemiMajorAxisKm:   3561300,
			Eccentricity:      0.0286,
			InclinationDeg:    15.47,
			OrbitalPeriodDays: 79.33,
			MassKg:            1.81e21,
			RadiusKm:          734.5,
		},

		// Uranus
		{
			ID:                "701",
			Name:              "Ariel",
			Kind:              KindMoon,
			ParentID:          "799",
			SemiMajorAxisKm:   190900,
			Eccentricity:      0.0012,
			InclinationDeg:    0.26,
			OrbitalPeriodDays: 2.520,
			MassKg:            1.35e21,
			RadiusKm:          578.9,
		},
		{
			ID:                "702",
			Name:              "Umbriel",
			Kind:              KindMoon,
			ParentID:          "799",
			SemiMajorAxisKm:   266000,
			Eccentricity:      0.0039,
			InclinationDeg:    0.128,
			OrbitalPeriodDays: 4.144,
			MassKg:            1.17e21,
			RadiusKm:          584.7,
		},
		{
			ID:                "703",
			Name:              "Titania",
			Kind:              KindMoon,
			ParentID:          "799",
			SemiMajorAxisKm:   436300,
			Eccentricity:      0.0011,
			InclinationDeg:    0.34,
			OrbitalPeriodDays: 8.706,
			MassKg:            3.53e21,
			RadiusKm:          788.4,
		},
		{
			ID:                "704",
			Name:              "Oberon",
			Kind:              KindMoon,
			ParentID:          "799",
			SemiMajorAxisKm:   583500,
			Eccentricity:      0.0014,
			InclinationDeg:    0.058,
			OrbitalPeriodDays: 13.46,
			MassKg:            3.01e21,
			RadiusKm:          761.4,
		},
		{
			ID:                "705",
			Name:              "Miranda",
			Kind:              KindMoon,
			ParentID:          "799",
			SemiMajorAxisKm:   129900,
			Eccentricity:      0.0013,
			InclinationDeg:    4.232,
			OrbitalPeriodDays: 1.413,
			MassKg:            6.59e19,
			RadiusKm:          235.8,
		},

		// Neptune
		{
			ID:                "801",
			Name:              "Triton",
			Kind:              KindMoon,
			ParentID:          "899",
			SemiMajorAxisKm:   354760,
			Eccentricity:      0.000016,
			InclinationDeg:    156.865,
			OrbitalPeriodDays: -5.8769, // retrograde
			MassKg:            2.14e22,
			RadiusKm:          1353.4,
		},
		{
			ID:                "802",
			Name:              "Nereid",
			Kind:              KindMoon,
			ParentID:          "899",
			SemiMajorAxisKm:   5513400,
			Eccentricity:      0.7507,
			InclinationDeg:    7.09,
			OrbitalPeriodDays: 360.13,
			MassKg:            3.1e19,
			RadiusKm:          170.0,
		},
		{
			ID:                "803",
			Name:              "Naiad",
			Kind:              KindMoon,
			ParentID:          "899",
			SemiMajorAxisKm:   48227,
			Eccentricity:      0.0003,
			InclinationDeg:    4.75,
			OrbitalPeriodDays: 0.294,
			MassKg:            1.9e17,
			RadiusKm:          33.0,
		},

		// Pluto
		{
			ID:                "901",
			Name:              "Charon",
			Kind:              KindMoon,
			ParentID:          "999",
			SemiMajorAxisKm:   19571,
			Eccentricity:      0.0002,
			InclinationDeg:    0.08,
			OrbitalPeriodDays: 6.387,
			MassKg:            1.586e21,
			RadiusKm:          606.0,
		},
		{
			ID:                "902",
			Name:              "Nix",
			Kind:              KindMoon,
			ParentID:          "999",
			SemiMajorAxisKm:   48675,
			Eccentricity:      0.002,
			InclinationDeg:    0.13,
			OrbitalPeriodDays: 24.85,
			MassKg:            4.5e16,
			RadiusKm:          19.5,
		},
		{
			ID:                "903",
			Name:              "Hydra",
			Kind:              KindMoon,
			ParentID:          "999",
			SemiMajorAxisKm:   64738,
			Eccentricity:      0.0055,
			InclinationDeg:    0.24,
			OrbitalPeriodDays: 38.2,
			MassKg:            4.8e16,
			RadiusKm:          25.5,
		},
	}
}
