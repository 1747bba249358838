package axml

import (
	"fmt"
	"math"
	"strconv"
)

// DataType is the type of a typed value (Res_value.dataType).
type DataType uint8

const (
	TypeNull      DataType = 0x00
	TypeReference DataType = 0x01
	TypeAttribute DataType = 0x02
	TypeString    DataType = 0x03
	TypeFloat     DataType = 0x04
	TypeDimension DataType = 0x05
	TypeFraction  DataType = 0x06

	TypeFirstInt   DataType = 0x10
	TypeIntDec     DataType = 0x10
	TypeIntHex     DataType = 0x11
	TypeBoolean    DataType = 0x12
	TypeColorARGB8 DataType = 0x1c
	TypeColorRGB8  DataType = 0x1d
	TypeColorARGB4 DataType = 0x1e
	TypeColorRGB4  DataType = 0x1f
	TypeLastInt    DataType = 0x1f
)

// Data values of TypeNull
const (
	DataNullUndefined uint32 = 0
	DataNullEmpty     uint32 = 1
)

const (
	complexUnitShift  = 0
	complexUnitMask   = 0xf
	complexRadixShift = 4
	complexRadixMask  = 0x3
)

var radixMults = [...]float64{0.00390625, 3.051758e-005, 1.192093e-007, 4.656613e-010}

var dimensionUnits = [...]string{"px", "dip", "sp", "pt", "in", "mm"}

var fractionUnits = [...]string{"%", "%p"}

func (t DataType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeReference:
		return "reference"
	case TypeAttribute:
		return "attribute"
	case TypeString:
		return "string"
	case TypeFloat:
		return "float"
	case TypeDimension:
		return "dimension"
	case TypeFraction:
		return "fraction"
	case TypeIntDec:
		return "int-dec"
	case TypeIntHex:
		return "int-hex"
	case TypeBoolean:
		return "boolean"
	case TypeColorARGB8:
		return "color-argb8"
	case TypeColorRGB8:
		return "color-rgb8"
	case TypeColorARGB4:
		return "color-argb4"
	case TypeColorRGB4:
		return "color-rgb4"
	}
	return fmt.Sprintf("type-0x%02x", uint8(t))
}

// complexToFloat decodes the mantissa and radix of a complex value.
// The unit bits are ignored.
func complexToFloat(x uint32) float64 {
	mantissa := int32(x & 0xFFFFFF00)
	return float64(mantissa) * radixMults[(x>>complexRadixShift)&complexRadixMask]
}

// packagePrefix returns "android:" for ids in the system package.
func packagePrefix(data uint32) string {
	if data>>24 == 1 {
		return "android:"
	}
	return ""
}

// FormatValue renders a typed value the way aapt dumps it. Strings
// are not handled here, as they need the string pool: for TypeString
// the result is the unknown value form.
func FormatValue(typ DataType, data uint32) string {
	switch typ {
	case TypeNull:
		switch data {
		case DataNullUndefined:
			return ""
		case DataNullEmpty:
			return "@empty"
		}
	case TypeAttribute:
		return fmt.Sprintf("?%s%08X", packagePrefix(data), data)
	case TypeReference:
		return fmt.Sprintf("@%s%08X", packagePrefix(data), data)
	case TypeFloat:
		return fmt.Sprintf("%f", math.Float32frombits(data))
	case TypeIntHex:
		return fmt.Sprintf("0x%08X", data)
	case TypeBoolean:
		if data == 0 {
			return "false"
		}
		return "true"
	case TypeDimension:
		if unit := (data >> complexUnitShift) & complexUnitMask; int(unit) < len(dimensionUnits) {
			return fmt.Sprintf("%f%s", complexToFloat(data), dimensionUnits[unit])
		}
	case TypeFraction:
		if unit := (data >> complexUnitShift) & complexUnitMask; int(unit) < len(fractionUnits) {
			return fmt.Sprintf("%f%s", complexToFloat(data)*100, fractionUnits[unit])
		}
	case TypeColorARGB8, TypeColorRGB8, TypeColorARGB4, TypeColorRGB4:
		return fmt.Sprintf("#%08X", data)
	default:
		if typ >= TypeFirstInt && typ <= TypeLastInt {
			return strconv.FormatInt(int64(int32(data)), 10)
		}
	}
	return fmt.Sprintf("<0x%X, type 0x%02X>", data, uint8(typ))
}
