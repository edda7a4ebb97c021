package gid

// View bundles an ID with all of its textual renderings
type View struct {
	Value  ID     `json:"value" yaml:"value"`
	Base36 string `json:"base36" yaml:"base36"`
	Base64 string `json:"base64" yaml:"base64"`
	Hex    string `json:"hex" yaml:"hex"`
}

// ConvertAll renders id in every output format
func ConvertAll(id ID) View {
	return View{
		Value:  id,
		Base36: EncodeBase36(id),
		Base64: EncodeBase64(id),
		Hex:    EncodeHex(id),
	}
}
