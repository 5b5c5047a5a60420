package vm

import "fmt"

// region ties a Device to the address range it answers for. remap, when
// set, means the device sees addresses relative to start rather than the
// absolute address.
type region struct {
	device Device
	start  uint16
	end    uint16
	remap  bool
}

func (r region) contains(addr uint16) bool {
	return addr >= r.start && addr <= r.end
}

// MemoryMapper dispatches addressed accesses across an ordered list of
// mapped devices. Regions are searched most-recently-mapped first, so a
// later Map call shadows an earlier one over any overlapping range. The
// mapper is owned exclusively by the CPU that holds it; no locking is
// used or needed.
type MemoryMapper struct {
	regions []region
}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{}
}

// Map registers device to answer for [start, end] (inclusive). The new
// region is searched before any previously mapped region.
func (m *MemoryMapper) Map(device Device, start, end uint16, remap bool) error {
	if end < start {
		return fmt.Errorf("region end %#04x before start %#04x", end, start)
	}
	m.regions = append([]region{{device: device, start: start, end: end, remap: remap}}, m.regions...)
	return nil
}

// Unmap removes the most recently mapped region registered for device, the
// inverse of Map.
func (m *MemoryMapper) Unmap(device Device) {
	for i, r := range m.regions {
		if r.device == device {
			m.regions = append(m.regions[:i], m.regions[i+1:]...)
			return
		}
	}
}

func (m *MemoryMapper) find(addr uint16) (region, error) {
	for _, r := range m.regions {
		if r.contains(addr) {
			return r, nil
		}
	}
	return region{}, fmt.Errorf("%w: %#04x", errNoRegion, addr)
}

func (r region) translate(addr uint16) uint16 {
	if r.remap {
		return addr - r.start
	}
	return addr
}

func (m *MemoryMapper) Get8(addr uint16) (uint8, error) {
	r, err := m.find(addr)
	if err != nil {
		return 0, err
	}
	return r.device.Get8(r.translate(addr))
}

func (m *MemoryMapper) Get16(addr uint16) (uint16, error) {
	r, err := m.find(addr)
	if err != nil {
		return 0, err
	}
	return r.device.Get16(r.translate(addr))
}

func (m *MemoryMapper) Set8(addr uint16, value uint8) error {
	r, err := m.find(addr)
	if err != nil {
		return err
	}
	return r.device.Set8(r.translate(addr), value)
}

func (m *MemoryMapper) Set16(addr uint16, value uint16) error {
	r, err := m.find(addr)
	if err != nil {
		return err
	}
	return r.device.Set16(r.translate(addr), value)
}
