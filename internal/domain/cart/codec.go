package cart

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// encodeLines serializes the line list for the local store. Prices are
// encoded as strings so the frozen decimal value survives the round trip
// without float drift.
func encodeLines(lines []Line) []byte {
	var e jx.Encoder
	e.ArrStart()
	for _, l := range lines {
		e.ObjStart()
		e.FieldStart("id")
		e.Int64(l.ProductID)
		e.FieldStart("name")
		e.Str(l.Name)
		e.FieldStart("price")
		e.Str(l.Price.String())
		e.FieldStart("imageUrl")
		e.Str(l.ImageURL)
		e.FieldStart("category")
		e.Str(l.Category)
		e.FieldStart("quantity")
		e.Int(l.Quantity)
		e.ObjEnd()
	}
	e.ArrEnd()
	return e.Bytes()
}

// decodeLines parses a persisted line list. Unknown fields are skipped so
// older snapshots keep loading; structurally broken data or a non-positive
// quantity is an error and the caller falls back to an empty cart.
func decodeLines(data []byte) ([]Line, error) {
	d := jx.DecodeBytes(data)

	var lines []Line
	if err := d.Arr(func(d *jx.Decoder) error {
		var l Line
		if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
			var err error
			switch string(key) {
			case "id":
				l.ProductID, err = d.Int64()
			case "name":
				l.Name, err = d.Str()
			case "price":
				var raw string
				if raw, err = d.Str(); err == nil {
					l.Price, err = decimal.NewFromString(raw)
				}
			case "imageUrl":
				l.ImageURL, err = d.Str()
			case "category":
				l.Category, err = d.Str()
			case "quantity":
				l.Quantity, err = d.Int()
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		if l.Quantity < 1 {
			return errors.Errorf("line %d: invalid quantity %d", l.ProductID, l.Quantity)
		}
		lines = append(lines, l)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode cart lines")
	}
	return lines, nil
}
