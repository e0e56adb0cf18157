package enumset_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c360studio/enumset"
)

func ExampleNew() {
	suits := enumset.New[string]("Suit")
	suits.MustRegister("CLUBS", "clubs")
	suits.MustRegister("DIAMONDS", "diamonds")
	suits.MustRegister("HEARTS", "hearts")
	suits.MustRegister("SPADES", "spades")
	suits.Seal()

	hearts, _ := suits.FindByValue("hearts")
	fmt.Println(hearts.Ord(), hearts.Key())
	fmt.Println(suits.Len(), suits.Keys())
	// Output:
	// 2 HEARTS
	// 4 [CLUBS DIAMONDS HEARTS SPADES]
}

func ExampleSet_Register() {
	suits := enumset.New[string]("Suit",
		enumset.WithWarnFunc[string](func(r enumset.Redeclaration) {
			fmt.Printf("redeclared %s::%s\n", r.Set, r.Key)
		}))
	suits.MustRegister("HEARTS", "hearts")

	// Declaring the same key/value pair again is benign.
	suits.MustRegister("HEARTS", "hearts")

	// Reusing the key with a different value is not.
	if _, err := suits.Register("HEARTS", "coeurs"); errors.Is(err, enumset.ErrDuplicateKey) {
		fmt.Println("conflicting value rejected")
	}
	// Output:
	// redeclared Suit::HEARTS
	// conflicting value rejected
}

func ExampleSet_FindByValueString() {
	scale := enumset.New[int]("Scale")
	scale.MustRegister("TEN", 10)
	scale.MustRegister("HUNDRED", 100)
	scale.MustRegister("THOUSAND", 1000)
	scale.MustRegister("MILLION", 1000000)

	m, ok := scale.FindByValueString("1000")
	fmt.Println(ok, m.Key(), m.Value())
	// Output: true THOUSAND 1000
}

func ExampleSet_Resolve() {
	suits := enumset.New[string]("Suit")
	hearts := suits.MustRegister("HEARTS", "hearts")

	text, _ := hearts.MarshalText()
	back, _ := suits.Resolve(string(text))

	fmt.Println(string(text))
	fmt.Println(back == hearts)
	// Output:
	// Suit::HEARTS
	// true
}

func ExampleMap() {
	suits := enumset.New[string]("Suit")
	suits.MustRegister("CLUBS", "clubs")
	suits.MustRegister("DIAMONDS", "diamonds")
	suits.MustRegister("HEARTS", "hearts")
	suits.MustRegister("SPADES", "spades")

	names := enumset.Map(suits, func(m *enumset.Member[string]) string {
		return strings.ToUpper(m.Value()[:1]) + m.Value()[1:]
	})
	fmt.Println(names)
	// Output: [Clubs Diamonds Hearts Spades]
}

// Members can carry structured payloads: any comparable type works as
// the value type.
func Example_planetaryConstants() {
	type body struct {
		Mass   float64 // kg
		Radius float64 // m
	}

	planets := enumset.New[body]("Planet")
	planets.MustRegister("MERCURY", body{3.303e+23, 2.4397e6})
	planets.MustRegister("EARTH", body{5.976e+24, 6.37814e6})
	planets.Seal()

	const g = 6.67300e-11
	planets.Each(func(m *enumset.Member[body]) {
		b := m.Value()
		fmt.Printf("%s: %.2f m/s^2\n", m.Key(), g*b.Mass/(b.Radius*b.Radius))
	})
	// Output:
	// MERCURY: 3.70 m/s^2
	// EARTH: 9.80 m/s^2
}
