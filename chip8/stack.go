package chip8

// callStack holds subroutine return addresses, at most limit deep.
type callStack struct {
	entries []uint16
	limit   int
}

func (s *callStack) push(address uint16) bool {
	if len(s.entries) >= s.limit {
		return false
	}

	s.entries = append(s.entries, address)
	return true
}

func (s *callStack) pop() (uint16, bool) {
	n := len(s.entries)
	if n == 0 {
		return 0, false
	}

	address := s.entries[n-1]
	s.entries = s.entries[:n-1]
	return address, true
}

func (s *callStack) clear() {
	s.entries = s.entries[:0]
}
