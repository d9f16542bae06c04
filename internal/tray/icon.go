package tray

// GetIcon returns the tray icon data. No icon asset is bundled yet, so the
// platform default is used.
func GetIcon() []byte {
	return nil
}
