// awsinv - formats inventory scan results into reports.
package main

func main() {
	Execute()
}
