// Package device describes the implanted device and its lead.
package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/mhatzl/pacemaker/pkg/req"
)

// Field paths of Info.
const (
	FieldDeviceModel     req.FieldPath = "device_model"
	FieldSerialNumber    req.FieldPath = "serial_number"
	FieldLeadImplantDate req.FieldPath = "lead_implant_date"
	FieldLeadImpedance   req.FieldPath = "lead_impedance"
)

// Info holds manufacturer and implant information.
type Info struct {
	// DeviceModel is the manufacturer's model name.
	DeviceModel string `yaml:"device_model" json:"device_model"`

	// SerialNumber is the device serial number.
	SerialNumber string `yaml:"serial_number" json:"serial_number"`

	// LeadImplantDate is the Unix timestamp of the lead implant.
	LeadImplantDate int64 `yaml:"lead_implant_date" json:"lead_implant_date"`

	// LeadImpedance is the lead impedance [Ohm].
	LeadImpedance uint32 `yaml:"lead_impedance" json:"lead_impedance"`
}

// Default returns the information stored on a factory device.
func Default() Info {
	return Info{
		DeviceModel:     "mantra-pacemaker",
		SerialNumber:    "123456",
		LeadImplantDate: 1718791844,
		LeadImpedance:   500,
	}
}

// ImplantDate returns the lead implant date in UTC.
func (i Info) ImplantDate() time.Time {
	return time.Unix(i.LeadImplantDate, 0).UTC()
}

func (i Info) String() string {
	return fmt.Sprintf("%s #%s (lead implanted %s, %d Ω)",
		i.DeviceModel, i.SerialNumber, i.ImplantDate().Format(time.DateOnly), i.LeadImpedance)
}

// Fields returns the path of every field of Info in declaration order.
func Fields() []req.FieldPath {
	return []req.FieldPath{FieldDeviceModel, FieldSerialNumber, FieldLeadImplantDate, FieldLeadImpedance}
}

var requirements = sync.OnceValue(func() *req.Registry {
	r, err := req.New("store", []req.FieldEntry{
		{Path: FieldDeviceModel, Tag: "store.manufacturer.model"},
		{Path: FieldSerialNumber, Tag: "store.manufacturer.serial"},
		{Path: FieldLeadImplantDate, Tag: "store.implant_date"},
		{Path: FieldLeadImpedance, Tag: "store.lead"},
	}, nil)
	if err != nil {
		panic(err)
	}
	return r
})

// Requirements returns the requirement registry for Info.
func Requirements() *req.Registry {
	return requirements()
}
