// trafficctl is the operational CLI for the traffic detector: collect
// readings, seed synthetic history, resolve place names, and run hotspot
// analyses against the store.
package main

func main() {
	Execute()
}
