// Package password provides the one-way password hashing primitive used by
// the gatehouse authentication strategies.
//
// It implements Argon2id with a PHC-like encoded string format:
//
//	$argon2id$v=19$m=<mem_kib>,t=<iters>,p=<par>$<salt_b64>$<key_b64>
//
// Security notes:
//   - Encoded hashes are treated as untrusted input during Verify and are
//     validated before any key derivation happens.
//   - Verify refuses hashes whose cost parameters exceed the configured
//     maximums, so a hostile stored hash cannot drive resource usage.
package password
