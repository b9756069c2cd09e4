package protolite_test

import (
	"fmt"
	"log"

	"github.com/anirudhraja/protolite"
	"github.com/anirudhraja/protolite/internal/testmsg"
	"github.com/anirudhraja/protolite/wire"
)

// Example demonstrates schema-less parsing.
func ExampleProtolite_Parse() {
	proto := protolite.New()

	// Encode: field 1 = varint 123, field 2 = string "hello"
	w := wire.NewWriter()
	w.WriteTag(1, wire.WireVarint)
	w.WriteUint64(123)
	w.WriteTag(2, wire.WireBytes)
	if err := w.WriteString("hello"); err != nil {
		log.Fatal(err)
	}

	fields, err := proto.Parse(w.Bytes())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(fields)
	// Output:
	// 1: 123
	// 2: {`68656c6c6f`}
}

// Example demonstrates a message written against an older schema keeping
// the fields it does not know.
func ExampleUnmarshal() {
	proto := protolite.New()

	data, err := proto.Marshal(&testmsg.Person{Name: "Ada", Age: 36})
	if err != nil {
		log.Fatal(err)
	}

	old, err := protolite.Unmarshal(proto, data, testmsg.DeserializePersonName)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("name:", old.Name)
	fmt.Print("unknown: ", old.Unknown)

	again, err := proto.Marshal(old)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%x\n%x\n", data, again)
	// Output:
	// name: Ada
	// unknown: 3: 36
	// 12034164611824
	// 12034164611824
}
