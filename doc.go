// Package wirepack turns structured values into compact, text-safe strings
// and back.
//
// Encoding runs three stages: the value is serialized with the codec
// selected by Options.Format, the bytes are compressed with
// Options.Compression at Options.Level, and the result is written as
// base64 text in Options.Alphabet. Decoding runs the inverse stages in
// reverse order. Both sides must use the same Options.
//
// # Basic Usage
//
//	opts := wirepack.DefaultOptions()
//
//	text, err := wirepack.Encode(wirepack.Record{Value: "hello"}, opts)
//	if err != nil {
//	    return err
//	}
//
//	rec, err := wirepack.Decode(text, opts)
//
// Options are built per call:
//
//	opts, err := wirepack.NewOptions(
//	    wirepack.WithFormat(format.SelfDescribingDocument),
//	    wirepack.WithCompression(format.CompressionZstd),
//	    wirepack.WithLevel(format.LevelBest),
//	    wirepack.WithAlphabet(format.AlphabetURLSafe),
//	    wirepack.WithChecksum(true),
//	)
//
// Any type the selected format can represent travels through EncodeValue
// and DecodeValue:
//
//	text, err := wirepack.EncodeValue(point, opts)
//	point, err := wirepack.DecodeValue[Point](text, opts)
//
// # Errors
//
// Every failure is a *PipelineError naming the failed Stage and wrapping a
// sentinel from package errs:
//
//	_, err := wirepack.Decode(text, opts)
//	if errors.Is(err, errs.ErrCorruptStream) {
//	    stage, _ := wirepack.StageOf(err) // StageDecompression
//	}
//
// Nothing panics on malformed input and nothing is logged.
//
// # Package Structure
//
// The stages live in their own packages and can be used directly:
// codec (serialization), compress (compression) and textsafe (base64).
// Shared enumerations are in format.
package wirepack
