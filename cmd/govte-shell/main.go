// Command govte-shell hosts a real shell under a pseudo-terminal, runs its
// output through the govte parser and screen state engine, and redraws the
// resulting grid to the controlling terminal.
package main

func main() {
	Execute()
}
