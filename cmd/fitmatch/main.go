// Command fitmatch selects best-fit candidate functions for training signals
// and classifies test points against the selected fits.
//
// Run "fitmatch --help" for the available subcommands.
package main

func main() {
	Execute()
}
