package models

import cpuModels "github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/cpu/models"

type LoadRequest struct {
	Name string `json:"name"`
}

type LoadResponse struct {
	PID      uint   `json:"pid"`
	NumPages int    `json:"num_pages"`
	SwapFile string `json:"swap_file"`
}

type PIDRequest struct {
	PID uint `json:"pid"`
}

type SwapInRequest struct {
	PID     uint `json:"pid"`
	Address int  `json:"address"`
}

type SwapOutRequest struct {
	PID  uint `json:"pid"`
	Page int  `json:"page"`
}

type PageTableResponse struct {
	PID     uint                         `json:"pid"`
	Name    string                       `json:"name"`
	Entries []cpuModels.TranslationEntry `json:"entries"`
}

type FramesResponse struct {
	Replacement string      `json:"replacement"`
	Free        int         `json:"free"`
	Frames      []FrameInfo `json:"frames"`
}

type DumpResponse struct {
	PID  uint   `json:"pid"`
	Path string `json:"path"`
}
