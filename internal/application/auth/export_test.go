package auth

import "time"

func (p *SessionProvider) SetClock(now func() time.Time) {
	p.now = now
}
