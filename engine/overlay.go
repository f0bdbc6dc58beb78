package engine

// LogoOption selects a logo property.
type LogoOption int

const (
	LogoEnable LogoOption = iota
	LogoFile
	LogoX
	LogoY
	LogoDelay
	LogoRepeat
	LogoOpacity
	LogoPosition
)

var logoNames = [...]string{"enable", "file", "x", "y", "delay", "repeat", "opacity", "position"}

func (o LogoOption) String() string {
	if o < 0 || int(o) >= len(logoNames) {
		return "unknown"
	}
	return logoNames[o]
}

// MarqueeOption selects a marquee property.
type MarqueeOption int

const (
	MarqueeEnable MarqueeOption = iota
	MarqueeText
	MarqueeColor
	MarqueeOpacity
	MarqueePosition
	MarqueeRefresh
	MarqueeSize
	MarqueeTimeout
	MarqueeX
	MarqueeY
)

var marqueeNames = [...]string{"enable", "text", "color", "opacity", "position", "refresh", "size", "timeout", "x", "y"}

func (o MarqueeOption) String() string {
	if o < 0 || int(o) >= len(marqueeNames) {
		return "unknown"
	}
	return marqueeNames[o]
}
