// Command csgkernel is a small debug and self-test harness for the CSG
// kernel package set: it is not a façade over the library (callers import
// solid/mesh/geom directly) but a standalone tool for exercising fixture
// scenarios from the command line.
package main

func main() {
	Execute()
}
