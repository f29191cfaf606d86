// Package gps decodes the $GPGGA sentences captured by the NMEA
// serial framing mode into a coordinate fix, giving that framing mode
// an actual consumer instead of pure pass-through byte buffering.
package gps

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/tzneal/coordconv"
)

// FixQuality mirrors the original dwfix_t result of dwgpsnmea_gpgga.
type FixQuality int

const (
	FixError FixQuality = iota
	FixNone
	Fix2D
	Fix3D
)

type Fix struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
	NumSat    int
	Quality   FixQuality
}

const unknown = -999.0

// ParseGPGGA parses one $GPGGA sentence, following the field layout
// dwgpsnmea_gpgga reads: time, lat, N/S, lon, E/W, fix quality,
// num sats, hdop, altitude, altitude units, ...
func ParseGPGGA(sentence string) (Fix, bool) {
	sentence = strings.TrimRight(sentence, "\r\n")
	if star := strings.IndexByte(sentence, '*'); star >= 0 {
		sentence = sentence[:star]
	}
	if !strings.HasPrefix(sentence, "$GPGGA") {
		return Fix{}, false
	}
	fields := strings.Split(sentence, ",")
	if len(fields) < 10 {
		return Fix{}, false
	}

	fixQualityField := fields[6]
	fixQuality, err := strconv.Atoi(fixQualityField)
	if err != nil {
		return Fix{}, false
	}
	if fixQuality == 0 {
		return Fix{Quality: FixNone}, true
	}

	lat := latitudeFromNMEA(fields[2], hemiByte(fields[3]))
	lon := longitudeFromNMEA(fields[4], hemiByte(fields[5]))
	if lat == unknown || lon == unknown {
		return Fix{Quality: FixError}, false
	}

	numSat, _ := strconv.Atoi(fields[7])
	alt, _ := strconv.ParseFloat(fields[9], 64)

	return Fix{
		Latitude:  lat,
		Longitude: lon,
		Altitude:  alt,
		NumSat:    numSat,
		Quality:   Fix2D,
	}, true
}

func hemiByte(s string) byte {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

// latitudeFromNMEA follows latitude_from_nmea: 2 digits of degrees,
// 2 digits of minutes, a variable number of fractional minute digits.
func latitudeFromNMEA(pstr string, hemi byte) float64 {
	if len(pstr) < 5 || !unicode.IsDigit(rune(pstr[0])) || pstr[4] != '.' {
		return unknown
	}
	lat := float64(pstr[0]-'0')*10 + float64(pstr[1]-'0')
	mins, _ := strconv.ParseFloat(pstr[2:], 64)
	lat += mins / 60.0
	if hemi == 'S' {
		lat = -lat
	}
	return lat
}

// longitudeFromNMEA follows longitude_from_nmea: 3 digits of degrees,
// 2 digits of minutes, a variable number of fractional minute digits.
func longitudeFromNMEA(pstr string, hemi byte) float64 {
	if len(pstr) < 6 || !unicode.IsDigit(rune(pstr[0])) || pstr[5] != '.' {
		return unknown
	}
	lon := float64(pstr[0]-'0')*100 + float64(pstr[1]-'0')*10 + float64(pstr[2]-'0')
	mins, _ := strconv.ParseFloat(pstr[3:], 64)
	lon += mins / 60.0
	if hemi == 'W' {
		lon = -lon
	}
	return lon
}

// LatitudeHemisphere converts a fix's sign-carrying latitude back to a
// coordconv.Hemisphere, following HemisphereRuneToCoordconvHemisphere.
func LatitudeHemisphere(lat float64) coordconv.Hemisphere {
	if lat < 0 {
		return coordconv.HemisphereSouth
	}
	return coordconv.HemisphereNorth
}
