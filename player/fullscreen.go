package player

// FullScreenStrategy enters and leaves full-screen mode for whatever window shows the video.
type FullScreenStrategy interface {
	EnterFullScreenMode()
	ExitFullScreenMode()
	IsFullScreenMode() bool
}

// ToggleFullScreen flips full-screen mode. Without a strategy it does nothing.
func (p *MediaPlayer) ToggleFullScreen() {
	if p.fullScreen == nil {
		return
	}
	p.SetFullScreen(!p.fullScreen.IsFullScreenMode())
}

func (p *MediaPlayer) SetFullScreen(on bool) {
	if p.fullScreen == nil {
		return
	}
	if on {
		p.fullScreen.EnterFullScreenMode()
	} else {
		p.fullScreen.ExitFullScreenMode()
	}
}

// IsFullScreen reports false when there is no strategy.
func (p *MediaPlayer) IsFullScreen() bool {
	if p.fullScreen == nil {
		return false
	}
	return p.fullScreen.IsFullScreenMode()
}
