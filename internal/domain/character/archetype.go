package character

// Class is the archetype a character was created from
type Class string

const (
	ClassWarrior Class = "warrior"
	ClassMage    Class = "mage"
	ClassRogue   Class = "rogue"
	ClassMonster Class = "monster"
)

// Archetype holds the base stats and per-level growth of a class
type Archetype struct {
	Class  Class
	Base   Stats
	Growth Growth
}

var archetypes = map[Class]Archetype{
	ClassWarrior: {
		Class:  ClassWarrior,
		Base:   Stats{Health: 120, MaxHealth: 120, Mana: 30, MaxMana: 30, Attack: 15, Defense: 10, Speed: 8},
		Growth: Growth{MaxHealth: 15, MaxMana: 3, Attack: 2, Defense: 2, Speed: 1},
	},
	ClassMage: {
		Class:  ClassMage,
		Base:   Stats{Health: 80, MaxHealth: 80, Mana: 100, MaxMana: 100, Attack: 20, Defense: 5, Speed: 10},
		Growth: Growth{MaxHealth: 8, MaxMana: 10, Attack: 3, Defense: 1, Speed: 1},
	},
	ClassRogue: {
		Class:  ClassRogue,
		Base:   Stats{Health: 90, MaxHealth: 90, Mana: 50, MaxMana: 50, Attack: 18, Defense: 7, Speed: 15},
		Growth: Growth{MaxHealth: 10, MaxMana: 5, Attack: 2, Defense: 1, Speed: 2},
	},
	ClassMonster: {
		Class:  ClassMonster,
		Growth: Growth{MaxHealth: 10, MaxMana: 5, Attack: 2, Defense: 1, Speed: 1},
	},
}

// LookupArchetype returns the archetype for a class
func LookupArchetype(class Class) (Archetype, bool) {
	a, ok := archetypes[class]
	return a, ok
}

// PlayableClasses lists the classes a hero can be created from
func PlayableClasses() []Class {
	return []Class{ClassWarrior, ClassMage, ClassRogue}
}
