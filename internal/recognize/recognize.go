// Package recognize defines the boundary to the text-recognition
// collaborator. No OCR implementation ships with the engine.
package recognize

// Recognizer extracts unstructured text from a receipt image.
// Failures are returned as errors and mapped to a RecognitionFailed
// outcome at the engine boundary.
type Recognizer interface {
	RecognizeText(image []byte) (string, error)
}

// Func adapts a plain function to the Recognizer interface.
type Func func(image []byte) (string, error)

// RecognizeText calls f.
func (f Func) RecognizeText(image []byte) (string, error) {
	return f(image)
}
