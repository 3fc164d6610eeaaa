package registry

import "strings"

// Canonical identifier formats. Route names are "Route <n>", bus numbers are
// "BUS" followed by a zero-padded integer.
const (
	RoutePrefix = "Route "
	BusPrefix   = "BUS"

	// Sentinel assignment applied when a pickup point cannot be resolved.
	DefaultRouteName = "Route Unknown"
	DefaultBusNumber = "BUS000"
)

// Route is one entry in the static campus route table.
type Route struct {
	Name      string   `json:"name"`
	BusNumber string   `json:"busNumber"`
	Stops     []string `json:"stops"`
}

// Assignment pairs a route with the bus that serves it.
type Assignment struct {
	RouteName string `json:"routeName"`
	BusNumber string `json:"busNumber"`
}

// routes is loaded once at process start and never mutated. Stop names must
// match client input byte-for-byte. A stop may appear on more than one route
// (Pumpwell is on Route 7 and Route 12); the first-declared route wins.
var routes = []Route{
	{
		Name:      "Route 1",
		BusNumber: "BUS001",
		Stops:     []string{"Talapady", "Beeri", "Kotekar", "Kolya"},
	},
	{
		Name:      "Route 2",
		BusNumber: "BUS002",
		Stops: []string{"Puttur (Darbe Circle)", "Bus Stand", "Bolwar", "Nagara", "Kabaka",
			"Mani", "Kalladka"},
	},
	{
		Name:      "Route 3",
		BusNumber: "BUS003",
		Stops: []string{"Kavoor", "Bondel", "Padavinangadi", "Mary Hill", "Yeyyadi", "KPT",
			"Nanthoar Junction", "Bikkarnakatte"},
	},
	{
		Name:      "Route 4",
		BusNumber: "BUS004",
		Stops: []string{"NITK", "Thadambail", "Marigudi (Surathkal)", "Suraj Hotel",
			"Govindadas College", "Hosabettu", "Honnavatte", "Kulal Pannambur", "Kuloor",
			"Kodical Cross", "Chowki Canara Bank"},
	},
	{
		Name:      "Route 5",
		BusNumber: "BUS005",
		Stops: []string{"RTO", "Pandeshwar", "Mangala Devi", "Marnamikatte", "Nandigudde",
			"Velencia", "Kankandy"},
	},
	{
		Name:      "Route 6",
		BusNumber: "BUS006",
		Stops: []string{"Ashok Nagar", "Daivajna Hall", "Marigudi", "Urwa Market",
			"Mannagudda", "Durga Mahal", "Adyarkatte"},
	},
	{
		Name:      "Route 7",
		BusNumber: "BUS007",
		Stops: []string{"Kumpala", "Ullala", "Thokkottu", "Kallapu", "Jeppinamogaru",
			"Yekkuru", "Gorigudda", "Ujjodi", "Pumpwell"},
	},
	{
		Name:      "Route 8",
		BusNumber: "BUS008",
		Stops: []string{"Pandith House", "Kuttar", "Yenepoya", "Deralakatte", "Kanchana",
			"Assaigoli", "Konaje", "Mudipu", "Sajipa", "Melkar", "Panemangalore", "BC Road",
			"Kaikamba (BC Road)", "Modankap", "Pachinadka"},
	},
	{
		Name:      "Route 9",
		BusNumber: "BUS009",
		Stops: []string{"Malaemere", "Derebail Konchady", "Konchadi Kandak (Land links)",
			"Derebail Church", "Kuntikan", "Kottara Cross", "Bejai Kapikad Kapikaad",
			"KSRTC Bus Stand", "Bejai Circle", "Museum", "Padavu School", "Alape",
			"Padil Junction", "Adyar", "Adyar P O", "Theerthakere", "Calmady"},
	},
	{
		Name:      "Route 10",
		BusNumber: "BUS010",
		Stops: []string{"Kottara Chowki", "Ekkur", "Shaktinagar", "Bovikanam",
			"New Bus Store", "Chilimbi", "Lady Hill", "Lalbagh", "Ballalbagh", "Capitanio",
			"Bejai Church School", "PVS", "Bunts Hostel", "CV Nayak Hall", "City Hospital",
			"Kadri Mallikatte", "Shivabagh", "Nanthur", "Koodalkat", "Farangipet"},
	},
	{
		Name:      "Route 11",
		BusNumber: "BUS011",
		Stops: []string{"Moodabidri", "Yedapadavu", "Ganjimatta", "Kaikamba", "Polali Dwara",
			"Polali", "Kalpane"},
	},
	{
		Name:      "Route 12",
		BusNumber: "BUS012",
		Stops: []string{"Kudroli", "Boloor", "Carstreet", "Venkatagrama Temple",
			"Temple Square", "Hampankatta", "Jyothi", "Pumpwell", "Padil"},
	},
}

// Routes returns the full table in declaration order.
func Routes() []Route {
	return routes
}

// ResolveStop returns the route serving the given pickup point. Matching is
// exact (case and whitespace sensitive); no fuzzy matching or normalization
// is attempted, so registry and client input must agree byte-for-byte.
func ResolveStop(stop string) (Assignment, bool) {
	return resolve(routes, stop)
}

// resolve scans the table in declaration order. If a stop appears in more
// than one route the first declared route wins.
func resolve(table []Route, stop string) (Assignment, bool) {
	for _, r := range table {
		for _, s := range r.Stops {
			if s == stop {
				return Assignment{RouteName: r.Name, BusNumber: r.BusNumber}, true
			}
		}
	}
	return Assignment{}, false
}

// Fallback returns the sentinel assignment used when resolution fails. The
// sentinel is in canonical format so it survives the same validation as a
// real assignment.
func Fallback() Assignment {
	return Assignment{RouteName: DefaultRouteName, BusNumber: DefaultBusNumber}
}

// ValidRouteName reports whether name is in canonical "Route <n>" form.
func ValidRouteName(name string) bool {
	return strings.HasPrefix(name, RoutePrefix)
}

// ValidBusNumber reports whether bus is in canonical "BUS<nnn>" form.
func ValidBusNumber(bus string) bool {
	return strings.HasPrefix(bus, BusPrefix)
}
