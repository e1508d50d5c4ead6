package main

const (
	ItemTypeWeapon = "weapon"
	ItemTypeArmor  = "armor"
)

const starterWeaponID = "brass_knuckles"

type WeaponSpec struct {
	Name   string `json:"name"`
	Damage int    `json:"damage"`
	Price  int64  `json:"price"`
	Level  int    `json:"level"`
}

type ArmorSpec struct {
	Name    string `json:"name"`
	Defense int    `json:"defense"`
	Price   int64  `json:"price"`
	Level   int    `json:"level"`
}

type CrimeSpec struct {
	Name      string  `json:"name"`
	Energy    int     `json:"energy"`
	RewardMin int64   `json:"rewardMin"`
	RewardMax int64   `json:"rewardMax"`
	Exp       int     `json:"exp"`
	Success   float64 `json:"success"`
}

var weaponCatalog = map[string]WeaponSpec{
	"brass_knuckles": {Name: "Brass Knuckles", Damage: 5, Price: 200, Level: 1},
	"pistol":         {Name: "Pistol", Damage: 25, Price: 2000, Level: 5},
}

var armorCatalog = map[string]ArmorSpec{
	"leather_jacket": {Name: "Leather Jacket", Defense: 5, Price: 300, Level: 1},
}

var crimeCatalog = []CrimeSpec{
	{Name: "Pickpocket", Energy: 10, RewardMin: 20, RewardMax: 50, Exp: 5, Success: 0.9},
	{Name: "Bank Heist", Energy: 60, RewardMin: 500, RewardMax: 1000, Exp: 50, Success: 0.4},
}

// lookupItem resolves a shop item by type and id. The returned price covers
// both catalogs so purchase handling stays uniform.
func lookupItem(itemType string, itemID string) (string, int64, bool) {
	switch itemType {
	case ItemTypeWeapon:
		if weapon, ok := weaponCatalog[itemID]; ok {
			return weapon.Name, weapon.Price, true
		}
	case ItemTypeArmor:
		if armor, ok := armorCatalog[itemID]; ok {
			return armor.Name, armor.Price, true
		}
	}
	return "", 0, false
}

func itemDisplayName(itemType string, itemID string) string {
	if name, _, ok := lookupItem(itemType, itemID); ok {
		return name
	}
	return itemID
}
