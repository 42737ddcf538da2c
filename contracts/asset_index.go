package contracts

type Asset struct {
	Hash string `json:"hash"`
	Size uint32 `json:"size"`
}

// AssetIndex maps human-readable asset names to content-addressed objects.
type AssetIndex struct {
	Objects map[string]Asset `json:"objects"`
}
