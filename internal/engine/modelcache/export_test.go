package modelcache

// GateCount returns the number of per-key gates the library holds.
func GateCount(l *Library) int {
	l.gatesMu.Lock()
	defer l.gatesMu.Unlock()
	return len(l.gates)
}
