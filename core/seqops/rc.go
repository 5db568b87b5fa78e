// core/seqops/rc.go
package seqops

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = byte(i)
	}
	for _, p := range []string{"AT", "CG", "NN", "at", "cg", "nn"} {
		complement[p[0]] = p[1]
		complement[p[1]] = p[0]
	}
}

// Complement returns the Watson-Crick partner of b. Symbols outside
// {A,C,G,T,N} are returned unchanged so ambiguous input never fails.
func Complement(b byte) byte { return complement[b] }

// RevComp complements every symbol and reverses the order.
func RevComp(seq string) string {
	n := len(seq)
	if n == 0 {
		return ""
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = complement[seq[n-1-i]]
	}
	return string(out)
}
