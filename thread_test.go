package paintd

import (
	"testing"
	"time"
)

func startTestActor(t *testing.T, comp Compositor, opts ...Option) (chan<- Command, chan<- ControlMessage) {
	t.Helper()
	draw, control := Start(comp, opts...)
	t.Cleanup(func() {
		ack := make(chan struct{}, 1)
		select {
		case control <- Exit{Reply: ack}:
			<-ack
		default:
		}
	})
	return draw, control
}

func createCanvas(t *testing.T, control chan<- ControlMessage, w, h int) CreateReply {
	t.Helper()
	reply := make(chan CreateReply, 1)
	control <- CreateCanvas{Size: Size{Width: w, Height: h}, Reply: reply}
	select {
	case r := <-reply:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for canvas creation")
		return CreateReply{}
	}
}

func readBack(t *testing.T, draw chan<- Command, id CanvasID) *Pixmap {
	t.Helper()
	reply := make(chan *Pixmap, 1)
	draw <- DrawOp{CanvasID: id, Op: GetImageData{Reply: reply}}
	select {
	case pm := <-reply:
		return pm
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for pixels")
		return nil
	}
}

func TestActorCreateIssuesDistinctIncreasingIDs(t *testing.T) {
	_, control := startTestActor(t, NewMemCompositor())

	var ids []CanvasID
	for i := 0; i < 4; i++ {
		ids = append(ids, createCanvas(t, control, 4, 4).ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids not strictly increasing: %v", ids)
		}
	}
}

func TestActorFillAndReadBack(t *testing.T) {
	draw, control := startTestActor(t, NewMemCompositor())
	canvas := createCanvas(t, control, 10, 10)

	draw <- DrawOp{CanvasID: canvas.ID, Op: FillRect{
		Rect:        NewRect(0, 0, 10, 10),
		Style:       Solid(Red),
		Composition: DefaultCompositionOptions(),
		Transform:   Identity(),
	}}

	pm := readBack(t, draw, canvas.ID)
	if got := pm.GetPixel(5, 5); got != Red {
		t.Errorf("pixel = %+v, want red", got)
	}
}

func TestActorCommandsRunInOrder(t *testing.T) {
	draw, control := startTestActor(t, NewMemCompositor())
	canvas := createCanvas(t, control, 10, 10)

	// Later fills overwrite earlier ones; readback observes the last.
	for _, c := range []RGBA{Red, Green, Blue} {
		draw <- DrawOp{CanvasID: canvas.ID, Op: FillRect{
			Rect:        NewRect(0, 0, 10, 10),
			Style:       Solid(c),
			Composition: DefaultCompositionOptions(),
			Transform:   Identity(),
		}}
	}

	pm := readBack(t, draw, canvas.ID)
	if got := pm.GetPixel(5, 5); got != Blue {
		t.Errorf("pixel = %+v, want blue", got)
	}
}

func TestActorSaveRestoreAcrossCommands(t *testing.T) {
	draw, control := startTestActor(t, NewMemCompositor())
	canvas := createCanvas(t, control, 20, 20)

	clip := NewPath()
	clip.Rectangle(0, 0, 10, 20)

	draw <- DrawOp{CanvasID: canvas.ID, Op: Save{}}
	draw <- DrawOp{CanvasID: canvas.ID, Op: ClipPath{Path: clip, Transform: Identity()}}
	draw <- DrawOp{CanvasID: canvas.ID, Op: Restore{}}
	// After restore the clip is gone, so the full rect fills.
	draw <- DrawOp{CanvasID: canvas.ID, Op: FillRect{
		Rect:        NewRect(0, 0, 20, 20),
		Style:       Solid(Red),
		Composition: DefaultCompositionOptions(),
		Transform:   Identity(),
	}}

	pm := readBack(t, draw, canvas.ID)
	if got := pm.GetPixel(15, 10); got != Red {
		t.Errorf("pixel outside dropped clip = %+v, want red", got)
	}
}

func TestActorDrawImageFromOtherCanvas(t *testing.T) {
	draw, control := startTestActor(t, NewMemCompositor())
	a := createCanvas(t, control, 10, 10)
	b := createCanvas(t, control, 10, 10)

	draw <- DrawOp{CanvasID: a.ID, Op: FillRect{
		Rect:        NewRect(0, 0, 10, 10),
		Style:       Solid(Green),
		Composition: DefaultCompositionOptions(),
		Transform:   Identity(),
	}}
	draw <- DrawOp{CanvasID: b.ID, Op: DrawImageFromCanvas{
		Source:      a.ID,
		SrcRect:     NewRect(0, 0, 10, 10),
		DstRect:     NewRect(0, 0, 10, 10),
		Composition: DefaultCompositionOptions(),
		Transform:   Identity(),
	}}

	pm := readBack(t, draw, b.ID)
	if got := pm.GetPixel(5, 5); got != Green {
		t.Errorf("copied pixel = %+v, want green", got)
	}
}

func TestActorDrawCanvasIntoItself(t *testing.T) {
	draw, control := startTestActor(t, NewMemCompositor())
	canvas := createCanvas(t, control, 10, 10)

	// Left half red.
	draw <- DrawOp{CanvasID: canvas.ID, Op: FillRect{
		Rect:        NewRect(0, 0, 5, 10),
		Style:       Solid(Red),
		Composition: DefaultCompositionOptions(),
		Transform:   Identity(),
	}}
	// Copy the left half onto the right half of the same canvas.
	draw <- DrawOp{CanvasID: canvas.ID, Op: DrawImageFromCanvas{
		Source:      canvas.ID,
		SrcRect:     NewRect(0, 0, 5, 10),
		DstRect:     NewRect(5, 0, 5, 10),
		Composition: DefaultCompositionOptions(),
		Transform:   Identity(),
	}}

	pm := readBack(t, draw, canvas.ID)
	if got := pm.GetPixel(7, 5); got != Red {
		t.Errorf("self-copied pixel = %+v, want red", got)
	}
	if got := pm.GetPixel(2, 5); got != Red {
		t.Errorf("source pixel = %+v, want red", got)
	}
}

func TestActorRecreateKeepsKeyAndClearsPixels(t *testing.T) {
	comp := NewMemCompositor()
	draw, control := startTestActor(t, comp)
	canvas := createCanvas(t, control, 10, 10)

	draw <- DrawOp{CanvasID: canvas.ID, Op: FillRect{
		Rect:        NewRect(0, 0, 10, 10),
		Style:       Solid(Red),
		Composition: DefaultCompositionOptions(),
		Transform:   Identity(),
	}}
	size := Size{Width: 6, Height: 6}
	draw <- RecreateCanvas{CanvasID: canvas.ID, Size: &size}

	pm := readBack(t, draw, canvas.ID)
	if pm.Size() != size {
		t.Errorf("size after recreate = %+v, want %+v", pm.Size(), size)
	}
	if got := pm.GetPixel(3, 3); got != Transparent {
		t.Errorf("pixel after recreate = %+v, want transparent", got)
	}
	if comp.Image(canvas.ImageKey) == nil {
		t.Errorf("compositor entry for key %d gone after recreate", canvas.ImageKey)
	}
}

func TestActorCloseCanvasDeletesImage(t *testing.T) {
	comp := NewMemCompositor()
	draw, control := startTestActor(t, comp)
	canvas := createCanvas(t, control, 4, 4)

	draw <- CloseCanvas{CanvasID: canvas.ID}

	// Synchronize on a later command against a second canvas.
	other := createCanvas(t, control, 4, 4)
	readBack(t, draw, other.ID)

	if comp.Image(canvas.ImageKey) != nil {
		t.Error("compositor image survived close")
	}
}

func TestActorExitAcknowledges(t *testing.T) {
	_, control := Start(NewMemCompositor())

	ack := make(chan struct{}, 1)
	control <- Exit{Reply: ack}
	select {
	case <-ack:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for exit ack")
	}
}

func TestActorExitTearsDownCanvases(t *testing.T) {
	comp := NewMemCompositor()
	_, control := Start(comp)

	reply := make(chan CreateReply, 1)
	control <- CreateCanvas{Size: Size{Width: 4, Height: 4}, Reply: reply}
	created := <-reply

	ack := make(chan struct{}, 1)
	control <- Exit{Reply: ack}
	<-ack

	// Teardown runs after the ack; give the goroutine a moment.
	deadline := time.Now().Add(5 * time.Second)
	for comp.Image(created.ImageKey) != nil {
		if time.Now().After(deadline) {
			t.Fatal("compositor image survived exit")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestActorUpdateImagePublishesToCompositor(t *testing.T) {
	comp := NewMemCompositor()
	draw, control := startTestActor(t, comp)
	canvas := createCanvas(t, control, 8, 8)

	draw <- DrawOp{CanvasID: canvas.ID, Op: FillRect{
		Rect:        NewRect(0, 0, 8, 8),
		Style:       Solid(Blue),
		Composition: DefaultCompositionOptions(),
		Transform:   Identity(),
	}}
	ack := make(chan struct{}, 1)
	draw <- DrawOp{CanvasID: canvas.ID, Op: UpdateImage{Reply: ack}}
	<-ack

	pm := comp.Image(canvas.ImageKey)
	if pm == nil {
		t.Fatal("no compositor image")
	}
	if got := pm.GetPixel(4, 4); got != Blue {
		t.Errorf("published pixel = %+v, want blue", got)
	}
}
