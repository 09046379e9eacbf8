//go:build darwin

package desktop

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa

#import <Cocoa/Cocoa.h>

extern void goTrayStart(void);

static void dispatchTrayStartOnMain() {
	dispatch_async(dispatch_get_main_queue(), ^{
		goTrayStart();
	});
}
*/
import "C"

var pendingTrayStart func()

//export goTrayStart
func goTrayStart() {
	if pendingTrayStart != nil {
		pendingTrayStart()
	}
}

// startOnMainThread runs start on the Cocoa main thread; NSStatusItem must be
// created there and Wails calls OnStartup from a background goroutine.
func startOnMainThread(start func()) {
	pendingTrayStart = start
	C.dispatchTrayStartOnMain()
}
