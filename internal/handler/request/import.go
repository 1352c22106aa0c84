package request

// DetectRequest classifies raw input without parsing it.
type DetectRequest struct {
	Input    string `json:"input" binding:"required"`
	Filename string `json:"filename"`
}

// InspectRequest parses input and returns its non-secret preview. Encrypted
// key passwords are deliberately absent: decryption is not offered over HTTP.
// Format forces an explicit parse, e.g. to resolve a detection alternative
// or import free text as a brainwallet passphrase.
type InspectRequest struct {
	Input      string `json:"input" binding:"required"`
	Filename   string `json:"filename"`
	Passphrase string `json:"passphrase"`
	Script     string `json:"script" binding:"omitempty,oneof=wpkh sh(wpkh) pkh tr"`
	Format     string `json:"format"`
}

// SuggestRequest asks for recovery-phrase word completions.
type SuggestRequest struct {
	Prefix string `json:"prefix" binding:"required,max=16"`
	Limit  int    `json:"limit" binding:"omitempty,min=1,max=50"`
}
