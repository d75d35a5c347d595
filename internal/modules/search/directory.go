// README: Static airport and carrier directory used to resolve codes and airline names.
package search

import "strings"

type Airport struct {
	Name string
	Code string
}

// City lists airports in preference order; the first one is used for a city match.
type City struct {
	Name     string
	Airports []Airport
}

var defaultCities = []City{
	{"Dhaka", []Airport{{"Shahjalal International Airport", "DAC"}}},
	{"Kathmandu", []Airport{{"Tribhuvan International Airport", "KTM"}}},
	{"Kolkata", []Airport{{"Netaji Subhas Chandra Bose International Airport", "CCU"}}},
	{"Chennai", []Airport{{"Chennai International Airport", "MAA"}}},
	{"Bangkok", []Airport{{"Suvarnabhumi Airport", "BKK"}, {"Don Mueang International Airport", "DMK"}}},
	{"Phuket", []Airport{{"Phuket International Airport", "HKT"}}},
	{"Singapore", []Airport{{"Singapore Changi Airport", "SIN"}}},
	{"Kuala Lumpur", []Airport{{"Kuala Lumpur International Airport", "KUL"}}},
	{"Langkawi", []Airport{{"Langkawi International Airport", "LGK"}}},
	{"Dubai", []Airport{{"Dubai International Airport", "DXB"}, {"Al Maktoum International Airport", "DWC"}}},
	{"London", []Airport{
		{"Heathrow Airport", "LHR"}, {"Gatwick Airport", "LGW"}, {"London City Airport", "LCY"},
		{"Luton Airport", "LTN"}, {"Stansted Airport", "STN"},
	}},
	{"Manchester", []Airport{{"Manchester Airport", "MAN"}}},
	{"Tokyo (Narita)", []Airport{{"Narita International Airport", "NRT"}}},
	{"Doha", []Airport{{"Hamad International Airport", "DOH"}}},
	{"Maldives", []Airport{{"Velana International Airport (Male)", "MLE"}, {"Gan International Airport", "GAN"}}},
	{"Muscat", []Airport{{"Muscat International Airport", "MCT"}}},
	{"Rome", []Airport{{"Leonardo da Vinci–Fiumicino Airport", "FCO"}, {"Ciampino–G. B. Pastine International Airport", "CIA"}}},
	{"New York", []Airport{
		{"John F. Kennedy International Airport", "JFK"}, {"LaGuardia Airport", "LGA"},
		{"Newark Liberty International Airport", "EWR"},
	}},
	{"Washington", []Airport{
		{"Washington Dulles International Airport", "IAD"}, {"Ronald Reagan Washington National Airport", "DCA"},
		{"Baltimore/Washington International Thurgood Marshall Airport", "BWI"},
	}},
	{"Orlando, Florida", []Airport{{"Orlando International Airport", "MCO"}, {"Orlando Sanford International Airport", "SFB"}}},
	{"Miami", []Airport{{"Miami International Airport", "MIA"}, {"Fort Lauderdale-Hollywood International Airport", "FLL"}}},
	{"Bali", []Airport{{"Ngurah Rai International Airport (Denpasar)", "DPS"}}},
	{"Jakarta", []Airport{{"Soekarno-Hatta International Airport", "CGK"}, {"Halim Perdanakusuma International Airport", "HLP"}}},
	{"Hanoi", []Airport{{"Noi Bai International Airport", "HAN"}}},
	{"Ho Chi Minh City", []Airport{{"Tan Son Nhat International Airport", "SGN"}}},
	{"Philippines", []Airport{
		{"Ninoy Aquino International Airport (Manila)", "MNL"}, {"Mactan-Cebu International Airport", "CEB"},
		{"Clark International Airport", "CRK"},
	}},
	{"Guangzhou", []Airport{{"Guangzhou Baiyun International Airport", "CAN"}}},
	{"Kunming", []Airport{{"Kunming Changshui International Airport", "KMG"}}},
	{"Shanghai", []Airport{{"Shanghai Pudong International Airport", "PVG"}, {"Shanghai Hongqiao International Airport", "SHA"}}},
	{"Chengdu", []Airport{{"Chengdu Shuangliu International Airport", "CTU"}, {"Chengdu Tianfu International Airport", "TFU"}}},
	{"Hong Kong", []Airport{{"Hong Kong International Airport", "HKG"}}},
	{"Sydney", []Airport{{"Sydney Kingsford Smith Airport", "SYD"}}},
	{"Melbourne", []Airport{{"Melbourne Airport (Tullamarine)", "MEL"}, {"Avalon Airport", "AVV"}}},
	{"Brisbane", []Airport{{"Brisbane Airport", "BNE"}}},
	{"Adelaide", []Airport{{"Adelaide Airport", "ADL"}}},
	{"Perth", []Airport{{"Perth Airport", "PER"}}},
	{"Wellington", []Airport{{"Wellington International Airport", "WLG"}}},
	{"Rio de Janeiro", []Airport{{"Rio de Janeiro–Galeão International Airport", "GIG"}, {"Santos Dumont Airport", "SDU"}}},
	{"Buenos Aires", []Airport{{"Ministro Pistarini International Airport (Ezeiza)", "EZE"}, {"Jorge Newbery Airfield", "AEP"}}},
	{"Mexico City", []Airport{{"Mexico City International Airport", "MEX"}}},
	{"Nairobi", []Airport{{"Jomo Kenyatta International Airport", "NBO"}}},
	{"Alexandria", []Airport{{"Borg El Arab Airport", "HBE"}}},
	{"Cairo", []Airport{{"Cairo International Airport", "CAI"}}},
	{"Moscow", []Airport{
		{"Sheremetyevo International Airport", "SVO"}, {"Domodedovo International Airport", "DME"},
		{"Vnukovo International Airport", "VKO"},
	}},
	{"Tashkent", []Airport{{"Tashkent International Airport", "TAS"}}},
	{"Tbilisi", []Airport{{"Tbilisi International Airport", "TBS"}}},
	{"Ethiopia", []Airport{{"Addis Ababa Bole International Airport", "ADD"}}},
	{"Amsterdam", []Airport{{"Amsterdam Airport Schiphol", "AMS"}}},
	{"Paris", []Airport{{"Charles de Gaulle Airport", "CDG"}, {"Orly Airport", "ORY"}}},
	{"Venice", []Airport{{"Venice Marco Polo Airport", "VCE"}, {"Treviso Airport", "TSF"}}},
	{"Naples", []Airport{{"Naples International Airport", "NAP"}}},
	{"Barcelona", []Airport{{"Barcelona–El Prat Airport", "BCN"}}},
	{"Madrid", []Airport{{"Adolfo Suárez Madrid–Barajas Airport", "MAD"}}},
	{"Lisbon", []Airport{{"Humberto Delgado Airport (Lisbon Airport)", "LIS"}}},
	{"Malaga", []Airport{{"Málaga-Costa del Sol Airport", "AGP"}}},
	{"Toronto", []Airport{{"Toronto Pearson International Airport", "YYZ"}, {"Billy Bishop Toronto City Airport", "YTZ"}}},
	{"Montreal", []Airport{{"Montréal–Pierre Elliott Trudeau International Airport", "YUL"}}},
	{"Zurich", []Airport{{"Zurich Airport", "ZRH"}}},
	{"Warsaw", []Airport{{"Warsaw Chopin Airport", "WAW"}}},
	{"Lagos", []Airport{{"Murtala Muhammed International Airport", "LOS"}}},
	{"Addis Ababa", []Airport{{"Addis Ababa Bole International Airport", "ADD"}}},
	{"Barishal", []Airport{{"Barisal Airport", "BZL"}}},
	{"Chittagong", []Airport{{"Shah Amanat International Airport", "CGP"}}},
	{"Saidpur", []Airport{{"Saidpur Airport", "SPD"}}},
	{"Rajshahi", []Airport{{"Shah Makhdum Airport", "RJH"}}},
	{"Sylhet", []Airport{{"Osmani International Airport", "ZYL"}}},
	{"Cox's Bazar", []Airport{{"Cox's Bazar Airport", "CXB"}}},
	{"Jessore", []Airport{{"Jessore Airport", "JSR"}}},
}

var defaultCarriers = map[string]string{
	"AA":  "American Airlines",
	"AF":  "Air France",
	"AI":  "Air India",
	"AK":  "AirAsia",
	"BA":  "British Airways",
	"BG":  "Biman Bangladesh Airlines",
	"BR":  "EVA Air",
	"BS":  "US-Bangla Airlines",
	"CA":  "Air China",
	"CX":  "Cathay Pacific",
	"DL":  "Delta Air Lines",
	"EK":  "Emirates",
	"ET":  "Ethiopian Airlines",
	"EY":  "Etihad Airways",
	"FR":  "Ryanair",
	"IB":  "Iberia",
	"JL":  "Japan Airlines",
	"KE":  "Korean Air",
	"KLM": "KLM Royal Dutch Airlines",
	"LH":  "Lufthansa",
	"MH":  "Malaysia Airlines",
	"QF":  "Qantas",
	"QR":  "Qatar Airways",
	"SQ":  "Singapore Airlines",
	"TK":  "Turkish Airlines",
	"UA":  "United Airlines",
	"VS":  "Virgin Atlantic",
	"WN":  "Southwest Airlines",
}

// Directory answers exact lookups; it never guesses.
type Directory struct {
	byName   map[string]string
	known    []string
	carriers map[string]string
}

func NewDirectory(cities []City, carriers map[string]string) *Directory {
	d := &Directory{byName: make(map[string]string), carriers: carriers}
	add := func(name, code string) {
		key := foldKey(name)
		if _, dup := d.byName[key]; dup {
			return
		}
		d.byName[key] = code
		d.known = append(d.known, name)
	}
	for _, c := range cities {
		if len(c.Airports) == 0 {
			continue
		}
		add(c.Name, c.Airports[0].Code)
		for _, a := range c.Airports {
			add(a.Name, a.Code)
		}
	}
	// Codes resolve to themselves so "DAC" works as input.
	for _, c := range cities {
		for _, a := range c.Airports {
			if _, ok := d.byName[foldKey(a.Code)]; !ok {
				d.byName[foldKey(a.Code)] = a.Code
			}
		}
	}
	return d
}

// DefaultDirectory is the built-in table.
func DefaultDirectory() *Directory {
	return NewDirectory(defaultCities, defaultCarriers)
}

// Lookup matches a city, airport name, or IATA code case-insensitively.
func (d *Directory) Lookup(text string) (string, bool) {
	code, ok := d.byName[foldKey(text)]
	return code, ok
}

// KnownNames lists every city and airport name, the universe a corrector may answer from.
func (d *Directory) KnownNames() []string {
	out := make([]string, len(d.known))
	copy(out, d.known)
	return out
}

// CarrierName returns the airline for code, or code itself when unknown.
func (d *Directory) CarrierName(code string) string {
	if name, ok := d.carriers[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return name
	}
	return code
}

func foldKey(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.Trim(s, "()")
}
