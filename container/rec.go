package container

import (
	"fmt"
	"time"

	"github.com/kelindar/tibiavcr/demux"
	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
)

// recTwirlFor returns the deobfuscation modulus for a Rec container
// version, or 0 if the version uses no twirl at all (259).
func recTwirlFor(containerVersion int) (twirl int, encrypted, checksum bool, err error) {
	switch containerVersion {
	case 259:
		return 0, false, false, nil
	case 515:
		return 5, false, true, nil
	case 516, 517:
		return 8, containerVersion == 517, true, nil
	case 518:
		return 6, true, true, nil
	default:
		return 0, false, false, fmt.Errorf("%w: rec container version %d", ErrInvalidFormat, containerVersion)
	}
}

// recDeobfuscate reverses the per-byte "twirl" applied to Rec fragments
// from container version 515 onward, then AES-decrypts if the version
// requires it. Grounded line-for-line on the original Deobfuscate routine:
// the key derives from the fragment's own length and timestamp, and the
// per-byte subtraction amount is rounded up to a multiple of twirl.
func recDeobfuscate(data []byte, length int, timestampMs uint32, twirl int, aesCipher *aesECB256) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)

	if twirl > 0 {
		key := (uint32(length) + timestampMs + 2) & 0xFF

		for i := range out {
			alpha := int32((key + uint32(i)*33) & 0xFF)
			if alpha > 127 {
				alpha -= 256
			}

			beta := alpha % int32(twirl)
			if beta < 0 {
				beta += int32(twirl)
			}
			if beta != 0 {
				alpha += int32(twirl) - beta
			}

			out[i] = out[i] - byte(alpha)
		}
	}

	if aesCipher != nil {
		plain, err := aesCipher.decrypt(out)
		if err != nil {
			return nil, err
		}
		return plain, nil
	}

	return out, nil
}

// ReadRec decodes a Rec (TibiCAM) recording.
func ReadRec(file *reader.Reader, profile *version.Profile, recovery Recovery) (*Recording, bool, error) {
	containerVersion, err := file.U16()
	if err != nil {
		return nil, false, fmt.Errorf("container: rec: %w", err)
	}
	fragmentCount, err := file.S32()
	if err != nil {
		return nil, false, fmt.Errorf("container: rec: %w", err)
	}

	twirl, encrypted, hasChecksum, err := recTwirlFor(int(containerVersion))
	if err != nil {
		return nil, false, err
	}

	frameLengthWidth := 2
	count := int(fragmentCount)
	if containerVersion == 259 {
		frameLengthWidth = 4
	} else {
		count -= 57
		if count < 0 {
			return nil, false, fmt.Errorf("%w: rec fragment count too small", ErrInvalidFormat)
		}
	}

	var aesCipher *aesECB256
	if encrypted {
		aesCipher, err = newAESECB256(recAESKey)
		if err != nil {
			return nil, false, err
		}
	}

	rec := &Recording{}
	parser := protocol.New(profile)
	d := demux.New(2)
	partial := false

	for i := 0; i < count; i++ {
		if i == count-1 && file.Remaining() == 0 {
			break
		}

		var length int
		if frameLengthWidth == 2 {
			n, err := file.U16()
			if err != nil {
				partial = true
				break
			}
			length = int(n)
		} else {
			n, err := file.U32Range(0, 64<<10)
			if err != nil {
				partial = true
				break
			}
			length = int(n)
		}

		timestamp, err := file.U32()
		if err != nil {
			partial = true
			break
		}

		raw, err := file.Bytes(length)
		if err != nil {
			partial = true
			break
		}

		plain, err := recDeobfuscate(raw, length, timestamp, twirl, aesCipher)
		if err != nil {
			partial = true
			break
		}

		submitErr := d.Submit(timestamp, reader.New(plain), func(payload *reader.Reader, ts uint32) error {
			var events []protocol.Event
			var err error
			if recovery == RecoveryRepair {
				events, err = parser.ParseWithLoginRepair(payload)
			} else {
				events, err = parser.Parse(payload)
			}
			appendFrame(rec, time.Duration(ts)*time.Millisecond, events)
			return err
		})
		if submitErr != nil {
			partial = true
			break
		}

		if hasChecksum {
			if _, err := file.U32(); err != nil {
				partial = true
				break
			}
		}
	}

	if !partial {
		if err := d.Finish(); err != nil {
			partial = true
		}
	}

	if partial && recovery == RecoveryNone {
		return nil, false, fmt.Errorf("%w: rec recording truncated mid-stream", ErrInvalidFormat)
	}

	return rec, partial, nil
}
