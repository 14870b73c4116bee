// Package preprocess censors log content before tokenization.
//
// Every supported log format carries an ordered list of censoring patterns
// (see BuiltInPatterns). Each match is replaced with the "<*>" placeholder,
// neutralizing substrings that are already known to vary between lines:
//
//	censor := preprocess.NewCensor(preprocess.GetPatterns([]string{"ipv4", "ctime", "clock"}))
//	censor.Apply("check pass; Fri Jun 17 20:55:07 2005 user unknown")
//	// " check pass; <*> user unknown"
//
// Censored text keeps a leading space; callers trim before splitting.
package preprocess
