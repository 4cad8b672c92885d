// Package ocr reads the text written inside flowchart blocks using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). Each block is
// cropped to its interior, so the block outline does not confuse recognition,
// enlarged when small, and handed to Tesseract as an in-memory PNG. No
// temporary files are written.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Supported Languages
//
// The default language is English ("eng"). Other languages can be specified
// using their Tesseract language codes ("deu", "fra", "spa", "chi_sim", ...).
//
// # Functions
//
//   - ExtractTextFromRegion: one-shot OCR of a single region
//   - Reader: reuses one Tesseract client across many regions of a run
//   - Available: reports whether Tesseract can be initialised for a language
//
// # Concurrency
//
// A Tesseract client is not safe for concurrent use. Reader serializes its
// calls; ExtractTextFromRegion creates a client per call.
package ocr
