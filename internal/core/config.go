package core

// RuntimeConfig is handed to layer factories when a stack is assembled.
type RuntimeConfig struct {
	ScreenW   int   // drawable width in cells
	ScreenH   int   // drawable height in cells
	FrameRate int   // frames presented per second by the host
	Seed      int64 // world generation seed; 0 picks one from the clock
}
