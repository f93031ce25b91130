package shop

// DefaultShipID is the ship every player owns from the start.
const DefaultShipID = "default"

// PointsPerCoin is how many points of score earn one coin.
const PointsPerCoin = 10

// Ship is a purchasable player craft.
type Ship struct {
	ID          string
	Name        string
	Icon        string
	Price       int
	Description string
}

// Catalog lists every ship in display order.
var Catalog = []Ship{
	{ID: DefaultShipID, Name: "Standard Ship", Icon: "A", Price: 0, Description: "The ship you start with"},
	{ID: "flying-car", Name: "Flying Car", Icon: "C", Price: 500, Description: "A futuristic hover car"},
	{ID: "futuristic-spaceship", Name: "Futuristic Spaceship", Icon: "F", Price: 1000, Description: "An advanced starship"},
	{ID: "space-fighter", Name: "Space Fighter", Icon: "X", Price: 1500, Description: "A combat interceptor"},
	{ID: "flying-saucer", Name: "Flying Saucer", Icon: "O", Price: 2000, Description: "An alien disc"},
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (Ship, bool) {
	for _, s := range Catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Ship{}, false
}
