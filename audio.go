package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// Tone parameters. One frame of samples is queued per 60 Hz tick.
const (
	toneSampleRate = 44100
	toneFrequency  = 440
	toneVolume     = 48
	toneFrame      = toneSampleRate / 60
)

// Tone is a square wave played while the sound timer is active.
type Tone struct {
	device sdl.AudioDeviceID
	frame  []byte
}

// InitAudio opens an audio device for the CHIP-8 tone.
func InitAudio() (*Tone, error) {
	spec := &sdl.AudioSpec{
		Freq:     toneSampleRate,
		Format:   sdl.AUDIO_S8,
		Channels: 1,
		Samples:  512,
	}

	device, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	t := &Tone{
		device: device,
		frame:  squareWave(toneFrame),
	}

	// start playing immediately, silence until samples are queued
	sdl.PauseAudioDevice(device, false)
	return t, nil
}

// Update keeps about two frames of the tone queued while on, and drops the
// queue when off.
func (t *Tone) Update(on bool) {
	if t == nil {
		return
	}

	if !on {
		sdl.ClearQueuedAudio(t.device)
		return
	}

	if sdl.GetQueuedAudioSize(t.device) < uint32(2*len(t.frame)) {
		_ = sdl.QueueAudio(t.device, t.frame)
	}
}

// Close stops playback and closes the device.
func (t *Tone) Close() {
	if t == nil {
		return
	}
	sdl.CloseAudioDevice(t.device)
}

// squareWave returns n signed 8-bit samples of the tone.
func squareWave(n int) []byte {
	buf := make([]byte, n)
	period := toneSampleRate / toneFrequency

	for i := range buf {
		if i%period < period/2 {
			buf[i] = toneVolume
		} else {
			buf[i] = byte(256 - toneVolume)
		}
	}

	return buf
}
