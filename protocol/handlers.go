package protocol

import (
	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
)

func handleWorldInitialized(p *Parser, r *reader.Reader, out *[]Event) error {
	pos, err := readPosition(r)
	if err != nil {
		return err
	}
	p.lastPos = pos
	*out = append(*out, Event{Kind: EventWorldInitialized, Position: pos})
	return nil
}

func handleAmbientLight(p *Parser, r *reader.Reader, out *[]Event) error {
	intensity, err := r.U8()
	if err != nil {
		return err
	}
	color, err := r.U8()
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventAmbientLightChanged, LightIntensity: int(intensity), LightColor: int(color)})
	return nil
}

func handleFloorChange(kind EventKind) handler {
	return func(p *Parser, r *reader.Reader, out *[]Event) error {
		*out = append(*out, Event{Kind: kind})
		return nil
	}
}

// readTileContents reads a version-dependent run of objects for one tile:
// either creature references (recorded in the parser's seen-set) or items,
// terminated by a u16 end marker of 0xFF00 or above.
func readTileContents(p *Parser, r *reader.Reader) ([]Object, error) {
	var objs []Object
	for {
		marker, err := r.U16()
		if err != nil {
			return nil, err
		}
		if marker >= 0xFF00 {
			break
		}

		obj := Object{ID: int(marker)}
		switch marker {
		case creatureMarkerNew, creatureMarkerKnown, creatureMarkerReplaced:
			id, err := r.U32()
			if err != nil {
				return nil, err
			}
			obj.IsCreature = true
			obj.CreatureID = id
			p.markSeen(id)
		default:
			extra, err := r.U8()
			if err != nil {
				return nil, err
			}
			obj.ExtraByte = extra
			obj.HasExtra = true
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

func handleFullMapDescription(p *Parser, r *reader.Reader, out *[]Event) error {
	pos, err := readPosition(r)
	if err != nil {
		return err
	}
	p.lastPos = pos
	*out = append(*out, Event{Kind: EventFullMapDescription, Position: pos})
	return nil
}

func handleTileUpdated(p *Parser, r *reader.Reader, out *[]Event) error {
	pos, err := readPosition(r)
	if err != nil {
		return err
	}
	objs, err := readTileContents(p, r)
	if err != nil {
		return err
	}
	if len(objs) == 0 {
		// An emptied tile still needs to clear whatever it held before.
		*out = append(*out, Event{Kind: EventTileUpdated, Position: pos, StackPos: 0})
		return nil
	}
	for i, o := range objs {
		// StackPos 0 tells gamestate this is the first object of a fresh
		// tile description, so it clears whatever the tile held before
		// appending; later objects in the same batch just append.
		*out = append(*out, Event{Kind: EventTileUpdated, Position: pos, StackPos: i, Object: o})
	}
	return nil
}

func handleTileObjectAdded(p *Parser, r *reader.Reader, out *[]Event) error {
	pos, err := readPosition(r)
	if err != nil {
		return err
	}
	stack, err := r.U8()
	if err != nil {
		return err
	}
	id, err := r.U16()
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventTileObjectAdded, Position: pos, StackPos: int(stack), Object: Object{ID: int(id)}})
	return nil
}

func handleTileObjectTransformed(p *Parser, r *reader.Reader, out *[]Event) error {
	pos, err := readPosition(r)
	if err != nil {
		return err
	}
	stack, err := r.U8()
	if err != nil {
		return err
	}
	id, err := r.U16()
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventTileObjectTransformed, Position: pos, StackPos: int(stack), Object: Object{ID: int(id)}})
	return nil
}

func handleTileObjectRemoved(p *Parser, r *reader.Reader, out *[]Event) error {
	pos, err := readPosition(r)
	if err != nil {
		return err
	}
	stack, err := r.U8()
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventTileObjectRemoved, Position: pos, StackPos: int(stack)})
	return nil
}

func handleCreatureMoved(p *Parser, r *reader.Reader, out *[]Event) error {
	id, err := r.U32()
	if err != nil {
		return err
	}
	from, err := readPosition(r)
	if err != nil {
		return err
	}
	to, err := readPosition(r)
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventCreatureMoved, CreatureID: id, Position: from, ToPosition: to})
	return nil
}

func readContainerObject(r *reader.Reader) (Object, error) {
	id, err := r.U16()
	if err != nil {
		return Object{}, err
	}
	extra, err := r.U8()
	if err != nil {
		return Object{}, err
	}
	return Object{ID: int(id), ExtraByte: extra, HasExtra: true}, nil
}

func handleContainerOpened(p *Parser, r *reader.Reader, out *[]Event) error {
	cid, err := r.U8()
	if err != nil {
		return err
	}
	icon, err := r.U16()
	if err != nil {
		return err
	}
	hasParent, err := r.U8()
	if err != nil {
		return err
	}
	count, err := r.U8()
	if err != nil {
		return err
	}

	items := make([]Object, 0, count)
	for i := 0; i < int(count); i++ {
		obj, err := readContainerObject(r)
		if err != nil {
			return err
		}
		items = append(items, obj)
	}

	*out = append(*out, Event{Kind: EventContainerOpened, Container: ContainerUpdate{
		ContainerID: int(cid),
		IconItemID:  int(icon),
		HasParent:   hasParent != 0,
		TotalCount:  int(count),
		Items:       items,
	}})
	return nil
}

func handleContainerClosed(p *Parser, r *reader.Reader, out *[]Event) error {
	cid, err := r.U8()
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventContainerClosed, Container: ContainerUpdate{ContainerID: int(cid)}})
	return nil
}

func handleContainerAddItem(p *Parser, r *reader.Reader, out *[]Event) error {
	cid, err := r.U8()
	if err != nil {
		return err
	}
	obj, err := readContainerObject(r)
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventContainerAddedItem, Container: ContainerUpdate{ContainerID: int(cid), Item: obj}})
	return nil
}

func handleContainerTransform(p *Parser, r *reader.Reader, out *[]Event) error {
	cid, err := r.U8()
	if err != nil {
		return err
	}
	slot, err := r.U8()
	if err != nil {
		return err
	}
	obj, err := readContainerObject(r)
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventContainerTransformedItem, Container: ContainerUpdate{ContainerID: int(cid), SlotIndex: int(slot), Item: obj}})
	return nil
}

func handleContainerRemove(p *Parser, r *reader.Reader, out *[]Event) error {
	cid, err := r.U8()
	if err != nil {
		return err
	}
	slot, err := r.U8()
	if err != nil {
		return err
	}
	hasBackfill, err := r.U8()
	if err != nil {
		return err
	}

	update := ContainerUpdate{ContainerID: int(cid), SlotIndex: int(slot)}
	if hasBackfill != 0 {
		obj, err := readContainerObject(r)
		if err != nil {
			return err
		}
		update.Item = obj
	}

	*out = append(*out, Event{Kind: EventContainerRemovedItem, Container: update})
	return nil
}

func handlePlayerStats(p *Parser, r *reader.Reader, out *[]Event) error {
	health, err := r.U32()
	if err != nil {
		return err
	}
	maxHealth, err := r.U32()
	if err != nil {
		return err
	}

	update := PlayerUpdate{Health: int(health), MaxHealth: int(maxHealth)}

	if p.Profile.Protocol.Has(version.ProtocolExperienceU64) {
		xp, err := r.U64()
		if err != nil {
			return err
		}
		update.Experience = xp
	} else {
		xp, err := r.U16()
		if err != nil {
			return err
		}
		update.Experience = uint64(xp)
	}

	*out = append(*out, Event{Kind: EventPlayerDataUpdated, Player: update})
	return nil
}

func handlePlayerSkills(p *Parser, r *reader.Reader, out *[]Event) error {
	// Representative: skills are not modeled on Event, so this handler
	// reads no payload and only marks that an update occurred.
	*out = append(*out, Event{Kind: EventPlayerSkillsUpdated})
	return nil
}

func handleCreatureHealth(p *Parser, r *reader.Reader, out *[]Event) error {
	id, err := r.U32()
	if err != nil {
		return err
	}
	pct, err := r.U8()
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventCreatureHealthChanged, CreatureID: id, Health: int(pct)})
	return nil
}

func handleCreatureHeading(p *Parser, r *reader.Reader, out *[]Event) error {
	id, err := r.U32()
	if err != nil {
		return err
	}
	dir, err := r.U8()
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventCreatureHeadingChanged, CreatureID: id, Heading: int(dir)})
	return nil
}

func handleCreatureOutfit(p *Parser, r *reader.Reader, out *[]Event) error {
	id, err := r.U32()
	if err != nil {
		return err
	}
	outfit, err := readOutfit(r)
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventCreatureOutfitChanged, CreatureID: id, Outfit: outfit})
	return nil
}

func readOutfit(r *reader.Reader) (Outfit, error) {
	lookType, err := r.U16()
	if err != nil {
		return Outfit{}, err
	}

	var o Outfit
	o.LookType = int(lookType)
	if lookType != 0 {
		head, err := r.U8()
		if err != nil {
			return Outfit{}, err
		}
		primary, err := r.U8()
		if err != nil {
			return Outfit{}, err
		}
		secondary, err := r.U8()
		if err != nil {
			return Outfit{}, err
		}
		detail, err := r.U8()
		if err != nil {
			return Outfit{}, err
		}
		o.Head, o.Primary, o.Secondary, o.Detail = int(head), int(primary), int(secondary), int(detail)
	} else {
		item, err := r.U16()
		if err != nil {
			return Outfit{}, err
		}
		o.ItemID = int(item)
	}

	return o, nil
}

func handleCreatureSpeed(p *Parser, r *reader.Reader, out *[]Event) error {
	id, err := r.U32()
	if err != nil {
		return err
	}
	speed, err := r.U16()
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventCreatureSpeedChanged, CreatureID: id, Speed: int(speed)})
	return nil
}

func handleCreatureSkull(p *Parser, r *reader.Reader, out *[]Event) error {
	id, err := r.U32()
	if err != nil {
		return err
	}
	skull, err := r.U8()
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventCreatureSkullChanged, CreatureID: id, Skull: int(skull)})
	return nil
}

func handleCreatureShield(p *Parser, r *reader.Reader, out *[]Event) error {
	id, err := r.U32()
	if err != nil {
		return err
	}
	shield, err := r.U8()
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventCreatureShieldChanged, CreatureID: id, Shield: int(shield)})
	return nil
}

func handleCreatureSpeak(p *Parser, r *reader.Reader, out *[]Event) error {
	modeByte, err := r.U8()
	if err != nil {
		return err
	}
	authorRaw, err := r.String()
	if err != nil {
		return err
	}
	textRaw, err := r.String()
	if err != nil {
		return err
	}

	mode, ok := p.Profile.SpeakMode(modeByte)
	if !ok {
		// Versions inject dummy slots; discard rather than fail.
		return nil
	}

	*out = append(*out, Event{
		Kind:   EventCreatureSpoke,
		Mode:   int(mode),
		Author: string(authorRaw),
		Text:   string(textRaw),
	})
	return nil
}

func handleChannelMessage(p *Parser, r *reader.Reader, out *[]Event) error {
	channelID, err := r.U16()
	if err != nil {
		return err
	}
	authorRaw, err := r.String()
	if err != nil {
		return err
	}
	textRaw, err := r.String()
	if err != nil {
		return err
	}

	*out = append(*out, Event{
		Kind:      EventCreatureSpokeInChannel,
		ChannelID: int(channelID),
		Author:    string(authorRaw),
		Text:      string(textRaw),
	})
	return nil
}

func handleStatusMessage(p *Parser, r *reader.Reader, out *[]Event) error {
	typeByte, err := r.U8()
	if err != nil {
		return err
	}
	mode, ok := p.Profile.StatusMode(typeByte)
	if !ok {
		return nil
	}

	textRaw, err := r.String()
	if err != nil {
		return err
	}

	*out = append(*out, Event{Kind: EventStatusMessageReceived, Mode: int(mode), Text: string(textRaw)})
	return nil
}

func handleMissileFired(p *Parser, r *reader.Reader, out *[]Event) error {
	id, err := r.U8()
	if err != nil {
		return err
	}
	from, err := readPosition(r)
	if err != nil {
		return err
	}
	to, err := readPosition(r)
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventMissileFired, EffectID: int(id), Position: from, Position2: to})
	return nil
}

func handleGraphicalEffect(p *Parser, r *reader.Reader, out *[]Event) error {
	pos, err := readPosition(r)
	if err != nil {
		return err
	}
	id, err := r.U8()
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventGraphicalEffectPopped, Position: pos, EffectID: int(id)})
	return nil
}

func handleNumberEffect(p *Parser, r *reader.Reader, out *[]Event) error {
	pos, err := readPosition(r)
	if err != nil {
		return err
	}
	value, err := r.U32()
	if err != nil {
		return err
	}
	color, err := r.U8()
	if err != nil {
		return err
	}
	*out = append(*out, Event{Kind: EventNumberEffectPopped, Position: pos, EffectID: int(value), LightColor: int(color)})
	return nil
}
