package render

import (
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	facesOnce sync.Once
	faces     = map[float64]font.Face{}
	facesMu   sync.Mutex
	regular   *opentype.Font
)

// Face returns Go Regular at size points, falling back to the fixed 7x13
// face if the embedded font cannot be parsed.
func Face(size float64) font.Face {
	facesOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("parse font: %v", err)
			return
		}
		regular = f
	})
	if regular == nil {
		return basicfont.Face7x13
	}
	facesMu.Lock()
	defer facesMu.Unlock()
	if face, ok := faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("font face: %v", err)
		return basicfont.Face7x13
	}
	faces[size] = face
	return face
}
