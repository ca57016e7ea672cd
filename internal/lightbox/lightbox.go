// Package lightbox holds the image viewer state machine used by the gallery:
// an ordered image list, an active index, and boundary-aware navigation.
package lightbox

// ScrollLocker suspends page scrolling while the viewer is open. A nil
// locker is valid and turns the scroll side effects into no-ops.
type ScrollLocker interface {
	Suspend()
	Restore()
}

// Viewer cycles through an ordered image list. The list and active index are
// retained across Close, so reopening resumes where the viewer left off.
type Viewer struct {
	images []string
	active int
	open   bool

	locker   ScrollLocker
	lockHeld bool
}

func NewViewer(locker ScrollLocker) *Viewer {
	return &Viewer{locker: locker, active: -1}
}

// Open enters the open state on the given list, activating the image equal
// to start. An image absent from the list leaves the active index at -1.
func (v *Viewer) Open(images []string, start string) {
	v.images = images
	v.active = indexOf(images, start)
	if !v.open {
		v.open = true
		v.suspendScroll()
	}
}

// Next advances to the following image. At the last image it is a no-op.
func (v *Viewer) Next() {
	if v.active < len(v.images)-1 {
		v.active++
	}
}

// Previous steps back to the preceding image. At the first image it is a
// no-op.
func (v *Viewer) Previous() {
	if v.active > 0 {
		v.active--
	}
}

// SelectThumbnail jumps directly to the given image. An image absent from
// the list leaves the active index unchanged.
func (v *Viewer) SelectThumbnail(image string) {
	if i := indexOf(v.images, image); i >= 0 {
		v.active = i
	}
}

// Close leaves the open state and restores scrolling. Safe to call more
// than once; the scroll lock is released exactly once.
func (v *Viewer) Close() {
	v.open = false
	v.restoreScroll()
}

func (v *Viewer) IsOpen() bool {
	return v.open
}

func (v *Viewer) ActiveIndex() int {
	return v.active
}

// ActiveImage returns the active image, or false when nothing is active.
func (v *Viewer) ActiveImage() (string, bool) {
	if v.active < 0 || v.active >= len(v.images) {
		return "", false
	}
	return v.images[v.active], true
}

func (v *Viewer) Images() []string {
	return v.images
}

// NextDisabled reports whether Next would be a no-op.
func (v *Viewer) NextDisabled() bool {
	return v.active >= len(v.images)-1
}

// PreviousDisabled reports whether Previous would be a no-op.
func (v *Viewer) PreviousDisabled() bool {
	return v.active <= 0
}

func (v *Viewer) suspendScroll() {
	if v.locker != nil && !v.lockHeld {
		v.lockHeld = true
		v.locker.Suspend()
	}
}

func (v *Viewer) restoreScroll() {
	if v.locker != nil && v.lockHeld {
		v.lockHeld = false
		v.locker.Restore()
	}
}

func indexOf(list []string, item string) int {
	for i, v := range list {
		if v == item {
			return i
		}
	}
	return -1
}
