// core/energy/defaults.go
// Turner 2004 parameters at 37°C with enthalpies for rescaling.
package energy

// Stacking free energies and enthalpies, indexed [outer][inverted inner].
// Row/column order follows the PairType constants (AU UA CG GC GU UG).
var defaultStack = [6][6]int{
	{-110, -90, -210, -220, -140, -60},
	{-90, -130, -210, -240, -130, -100},
	{-210, -210, -240, -330, -210, -140},
	{-220, -240, -330, -340, -250, -150},
	{-140, -130, -210, -250, 130, -50},
	{-60, -100, -140, -150, -50, 30},
}

var defaultStackEnth = [6][6]int{
	{-940, -680, -1050, -1140, -880, -320},
	{-680, -770, -1040, -1240, -1280, -700},
	{-1050, -1040, -1060, -1340, -1210, -560},
	{-1140, -1240, -1340, -1490, -1260, -830},
	{-880, -1280, -1210, -1260, -1460, -1350},
	{-320, -700, -560, -830, -1350, -930},
}

var defaultHairpin = [MaxLoopTable + 1]int{
	Inf, Inf, Inf, 540, 560, 570, 540, 600, 550, 640,
	650, 660, 670, 678, 686, 694, 701, 707, 713, 719,
	725, 730, 735, 740, 744, 749, 753, 757, 761, 765, 769,
}

var defaultHairpinEnth = [MaxLoopTable + 1]int{
	Inf, Inf, Inf, 130, 480, 360, -290, 130, -290, 500,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
}

var defaultBulge = [MaxLoopTable + 1]int{
	Inf, 380, 280, 320, 360, 400, 440, 459, 470, 480,
	490, 500, 510, 519, 527, 534, 541, 548, 554, 560,
	565, 571, 576, 580, 585, 589, 594, 598, 602, 605, 609,
}

var defaultBulgeEnth = [MaxLoopTable + 1]int{
	Inf, 1060, 710, 710, 710, 710, 710, 710, 710, 710,
	710, 710, 710, 710, 710, 710, 710, 710, 710, 710,
	710, 710, 710, 710, 710, 710, 710, 710, 710, 710, 710,
}

var defaultInterior = [MaxLoopTable + 1]int{
	Inf, Inf, Inf, Inf, 110, 200, 200, 210, 230, 240,
	250, 260, 270, 278, 286, 294, 301, 307, 313, 319,
	325, 330, 335, 340, 345, 349, 353, 357, 361, 365, 369,
}

var defaultInteriorEnth = [MaxLoopTable + 1]int{
	Inf, Inf, Inf, Inf, -720, -680, -130, -130, -130, -130,
	-130, -130, -130, -130, -130, -130, -130, -130, -130, -130,
	-130, -130, -130, -130, -130, -130, -130, -130, -130, -130, -130,
}

// DefaultTables returns the built-in Turner 2004 parameter set. Mismatch and
// dangle contributions default to zero and can be supplied via a parameter
// file.
func DefaultTables() *Tables {
	t := &Tables{
		Hairpin:      defaultHairpin,
		HairpinEnth:  defaultHairpinEnth,
		Bulge:        defaultBulge,
		BulgeEnth:    defaultBulgeEnth,
		Interior:     defaultInterior,
		InteriorEnth: defaultInteriorEnth,

		TerminalAU:     50,
		TerminalAUEnth: 370,

		MLClosing:     930,
		MLClosingEnth: 3000,
		MLIntern:      -90,
		MLInternEnth:  -220,

		Ninio:     60,
		NinioEnth: 320,
		MaxNinio:  300,

		LXC: 107.856,

		SpecialHairpins:     map[string]int{},
		SpecialHairpinsEnth: map[string]int{},
	}
	for a := 0; a < PairCount; a++ {
		for b := 0; b < PairCount; b++ {
			if a < 6 && b < 6 {
				t.Stack[a][b] = defaultStack[a][b]
				t.StackEnth[a][b] = defaultStackEnth[a][b]
			} else {
				t.Stack[a][b] = Inf
				t.StackEnth[a][b] = Inf
			}
		}
	}
	return t
}
