// Package command provides the command registry, parser, and the handlers
// for the item commands players type.
package command

// Categories for organizing commands.
const (
	CategoryMovement    = "movement"
	CategoryWorld       = "world"
	CategoryItems       = "items"
	CategoryEquipment   = "equipment"
	CategoryConsumables = "consumables"
	CategorySystem      = "system"
)

// Handler identifiers mapping commands to handler functions.
const (
	HandlerMove      = "move"
	HandlerLook      = "look"
	HandlerInventory = "inventory"
	HandlerEquipment = "equipment"
	HandlerGet       = "get"
	HandlerPut       = "put"
	HandlerDrop      = "drop"
	HandlerJunk      = "junk"
	HandlerDonate    = "donate"
	HandlerGive      = "give"
	HandlerWear      = "wear"
	HandlerWield     = "wield"
	HandlerHold      = "hold"
	HandlerRemove    = "remove"
	HandlerEat       = "eat"
	HandlerTaste     = "taste"
	HandlerDrink     = "drink"
	HandlerSip       = "sip"
	HandlerPour      = "pour"
	HandlerFill      = "fill"
	HandlerOpen      = "open"
	HandlerClose     = "close"
	HandlerSacrifice = "sacrifice"
	HandlerRepair    = "repair"
	HandlerQuit      = "quit"
	HandlerHelp      = "help"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command for the help listing.
	Category string
	// Handler selects the function that runs the command.
	Handler string
	// Exact commands must be typed in full.
	Exact bool
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Movement commands
		{Name: "north", Aliases: []string{"n"}, Help: "Move north", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "south", Aliases: []string{"s"}, Help: "Move south", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "east", Aliases: []string{"e"}, Help: "Move east", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "west", Aliases: []string{"w"}, Help: "Move west", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "northeast", Aliases: []string{"ne"}, Help: "Move northeast", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "northwest", Aliases: []string{"nw"}, Help: "Move northwest", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "southeast", Aliases: []string{"se"}, Help: "Move southeast", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "southwest", Aliases: []string{"sw"}, Help: "Move southwest", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "up", Aliases: []string{"u"}, Help: "Move up", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "down", Aliases: []string{"d"}, Help: "Move down", Category: CategoryMovement, Handler: HandlerMove},

		// World commands
		{Name: "look", Aliases: []string{"l"}, Help: "Look around, or look in a container (look in <container>)", Category: CategoryWorld, Handler: HandlerLook},
		{Name: "open", Aliases: nil, Help: "Open a container (open <container>)", Category: CategoryWorld, Handler: HandlerOpen},
		{Name: "close", Aliases: nil, Help: "Close a container (close <container>)", Category: CategoryWorld, Handler: HandlerClose},
		{Name: "sacrifice", Aliases: []string{"sac"}, Help: "Offer an empty item on the floor to the gods", Category: CategoryWorld, Handler: HandlerSacrifice},

		// Item commands
		{Name: "inventory", Aliases: []string{"inv", "i"}, Help: "List what you are carrying", Category: CategoryItems, Handler: HandlerInventory},
		{Name: "get", Aliases: []string{"take"}, Help: "Pick something up (get <obj>|all|all.<obj> [container])", Category: CategoryItems, Handler: HandlerGet},
		{Name: "put", Aliases: nil, Help: "Put something in a container (put <obj>|all|all.<obj> <container>)", Category: CategoryItems, Handler: HandlerPut},
		{Name: "drop", Aliases: nil, Help: "Drop something (drop <obj>|all|all.<obj>|<n> coins)", Category: CategoryItems, Handler: HandlerDrop},
		{Name: "junk", Aliases: nil, Help: "Destroy something for a small reward", Category: CategoryItems, Handler: HandlerJunk},
		{Name: "donate", Aliases: nil, Help: "Send something to the donation room", Category: CategoryItems, Handler: HandlerDonate},
		{Name: "give", Aliases: nil, Help: "Give something away (give <obj>|<n> coins <player>)", Category: CategoryItems, Handler: HandlerGive},
		{Name: "repair", Aliases: nil, Help: "Attempt to repair a damaged item", Category: CategoryItems, Handler: HandlerRepair},

		// Equipment commands
		{Name: "equipment", Aliases: []string{"eq"}, Help: "List what you are using", Category: CategoryEquipment, Handler: HandlerEquipment},
		{Name: "wear", Aliases: nil, Help: "Wear something (wear <obj>|all|all.<obj> [position])", Category: CategoryEquipment, Handler: HandlerWear},
		{Name: "wield", Aliases: nil, Help: "Wield a weapon", Category: CategoryEquipment, Handler: HandlerWield},
		{Name: "hold", Aliases: []string{"grab"}, Help: "Hold something in your hand", Category: CategoryEquipment, Handler: HandlerHold},
		{Name: "remove", Aliases: []string{"rem"}, Help: "Stop using something (remove <obj>|all|all.<obj>)", Category: CategoryEquipment, Handler: HandlerRemove},

		// Consumables
		{Name: "eat", Aliases: nil, Help: "Eat some food", Category: CategoryConsumables, Handler: HandlerEat},
		{Name: "taste", Aliases: nil, Help: "Take a small bite", Category: CategoryConsumables, Handler: HandlerTaste},
		{Name: "drink", Aliases: nil, Help: "Drink from a container or fountain", Category: CategoryConsumables, Handler: HandlerDrink},
		{Name: "sip", Aliases: nil, Help: "Take a small sip", Category: CategoryConsumables, Handler: HandlerSip},
		{Name: "pour", Aliases: nil, Help: "Pour a liquid (pour <from> <to>|out)", Category: CategoryConsumables, Handler: HandlerPour},
		{Name: "fill", Aliases: nil, Help: "Fill a container from a fountain (fill <container> <fountain>)", Category: CategoryConsumables, Handler: HandlerFill},

		// System commands
		{Name: "quit", Help: "Save and disconnect", Category: CategorySystem, Handler: HandlerQuit, Exact: true},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
	}
}
