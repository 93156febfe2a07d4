package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

// Prints a value for SESSION_SECRET. Without one the server signs
// session cookies with a per-process key and sessions reset on restart.
func main() {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Printf("SESSION_SECRET=%s\n", hex.EncodeToString(b))
}
