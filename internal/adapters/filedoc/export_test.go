package filedoc

// SetAfterParse installs a hook that Fetch runs after reading a file.
func SetAfterParse(s *Source, fn func(path string)) {
	s.afterParse = fn
}
