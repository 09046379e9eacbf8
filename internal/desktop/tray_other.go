//go:build !darwin

package desktop

// startOnMainThread starts the tray loop directly; it runs on its own thread here.
func startOnMainThread(start func()) {
	start()
}
