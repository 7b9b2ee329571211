package models

// Owner es quien ocupa un marco. Los espacios de direcciones lo implementan.
type Owner interface {
	Name() string
}

// Frame es una entrada de la tabla de marcos (core map).
type Frame struct {
	Number      int
	InUse       bool
	Owner       Owner
	VirtualPage int
}

// FrameInfo es la vista serializable de un marco.
type FrameInfo struct {
	Frame       int    `json:"frame"`
	InUse       bool   `json:"in_use"`
	Owner       string `json:"owner,omitempty"`
	VirtualPage int    `json:"virtual_page"`
}

func (f Frame) Info() FrameInfo {
	info := FrameInfo{Frame: f.Number, InUse: f.InUse, VirtualPage: -1}
	if f.InUse && f.Owner != nil {
		info.Owner = f.Owner.Name()
		info.VirtualPage = f.VirtualPage
	}
	return info
}
