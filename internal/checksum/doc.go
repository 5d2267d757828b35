// Package checksum fingerprints source datasets for report provenance.
//
// A fingerprint is the SHA-256 of the exact file bytes, so any change to
// the input invalidates it. The short form is the first 12 hex digits,
// compact enough for report covers and log lines while still unlikely to
// collide within one project.
//
// # Example Usage
//
//	calc := checksum.New()
//	fp := calc.Fingerprint(content)
//	fmt.Println(checksum.Short(fp))
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
