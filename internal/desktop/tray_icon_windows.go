//go:build windows

package desktop

// trayIconBytes returns ICO data; the Windows tray loads icons with LoadImage(IMAGE_ICON)
func trayIconBytes(data []byte) ([]byte, error) {
	if err := checkIcon(data); err != nil {
		return nil, err
	}
	if isICO(data) {
		return data, nil
	}
	return encodeICO(data)
}
