// Command gid generates, converts and serves 63-bit identifiers.
package main

func main() {
	Execute()
}
