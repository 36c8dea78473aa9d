// Command sigscan compiles IDA-style byte signatures and searches process
// memory and files for them.
package main

func main() {
	Execute()
}
