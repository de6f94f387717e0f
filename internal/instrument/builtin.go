package instrument

import "github.com/handiism/chordfinder/internal/model"

func str(key model.Key, octave, frets int) String {
	return String{Open: model.NewNote(key, octave), Frets: frets}
}

// Guitar returns a six-string guitar in standard tuning with 24 frets.
func Guitar() *Instrument {
	return New("guitar", "Guitar", "Six-string guitar in standard tuning (E2 A2 D3 G3 B3 E4)", true,
		str(model.E, 2, 24),
		str(model.A, 2, 24),
		str(model.D, 3, 24),
		str(model.G, 3, 24),
		str(model.B, 3, 24),
		str(model.E, 4, 24),
	)
}

// DropDGuitar returns a six-string guitar with the low string tuned to D2.
func DropDGuitar() *Instrument {
	return New("guitar-drop-d", "Guitar (drop D)", "Six-string guitar in drop D tuning (D2 A2 D3 G3 B3 E4)", true,
		str(model.D, 2, 24),
		str(model.A, 2, 24),
		str(model.D, 3, 24),
		str(model.G, 3, 24),
		str(model.B, 3, 24),
		str(model.E, 4, 24),
	)
}

// BassGuitar returns a four-string electric bass.
func BassGuitar() *Instrument {
	return New("bass", "Bass guitar", "Four-string bass in standard tuning (E1 A1 D2 G2)", true,
		str(model.E, 1, 20),
		str(model.A, 1, 20),
		str(model.D, 2, 20),
		str(model.G, 2, 20),
	)
}

// Ukulele returns a soprano ukulele in re-entrant GCEA tuning.
func Ukulele() *Instrument {
	return New("ukulele", "Ukulele", "Soprano ukulele in re-entrant tuning (G4 C4 E4 A4)", false,
		str(model.G, 4, 15),
		str(model.C, 4, 15),
		str(model.E, 4, 15),
		str(model.A, 4, 15),
	)
}

// Balalaika returns a three-string prima balalaika.
func Balalaika() *Instrument {
	return New("balalaika", "Balalaika", "Prima balalaika (E4 E4 A4)", false,
		str(model.E, 4, 16),
		str(model.E, 4, 16),
		str(model.A, 4, 16),
	)
}

// Builtins returns a fresh copy of every built-in instrument.
func Builtins() []*Instrument {
	return []*Instrument{Guitar(), DropDGuitar(), BassGuitar(), Ukulele(), Balalaika()}
}
