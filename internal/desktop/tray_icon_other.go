//go:build !windows

package desktop

// trayIconBytes passes the packaged PNG through unchanged
func trayIconBytes(data []byte) ([]byte, error) {
	if err := checkIcon(data); err != nil {
		return nil, err
	}
	return data, nil
}
