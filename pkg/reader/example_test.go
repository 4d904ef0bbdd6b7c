package reader_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/graphar/pkg/info"
	"github.com/matzehuels/graphar/pkg/reader"
)

func ExampleVertexPropertyChunkInfoReader() {
	v1 := info.MustParseVersion("gar/v1")
	person, _ := info.NewVertexInfo("person", 100, []*info.PropertyGroup{
		info.NewPropertyGroup([]info.Property{info.NewProperty("id", info.Int64(), true)}, info.FileTypeParquet),
	}, "", v1)
	g, _ := info.NewGraphInfo("ldbc", []*info.VertexInfo{person}, nil, "", v1)

	counts := reader.StaticCounts{Vertices: map[string]int64{"person": 903}}
	r, err := reader.NewVertexPropertyChunkInfoReader(context.Background(), counts, g, "person", "id")
	if err != nil {
		fmt.Println(err)
		return
	}

	_ = r.SeekID(520)
	p, _ := r.GetChunk()
	fmt.Println(p)
	_ = r.NextChunk()
	p, _ = r.GetChunk()
	fmt.Println(p)
	fmt.Println(r.GetChunkNum())
	// Output:
	// person/id/chunk5
	// person/id/chunk6
	// 10
}

func ExampleAdjListChunkInfoReader() {
	v1 := info.MustParseVersion("gar/v1")
	person, _ := info.NewVertexInfo("person", 100, []*info.PropertyGroup{
		info.NewPropertyGroup([]info.Property{info.NewProperty("id", info.Int64(), true)}, info.FileTypeCSV),
	}, "", v1)
	knows, _ := info.NewEdgeInfo(info.EdgeConfig{
		Src: "person", Edge: "knows", Dst: "person",
		ChunkSize: 1024, SrcChunkSize: 100, DstChunkSize: 100,
		AdjacentLists: []*info.AdjacentList{info.NewAdjacentList(info.OrderedBySource, info.FileTypeCSV)},
		Version:       v1,
	})
	g, _ := info.NewGraphInfo("ldbc", []*info.VertexInfo{person}, []*info.EdgeInfo{knows}, "", v1)

	counts := reader.StaticCounts{
		Vertices: map[string]int64{"person": 250},
		Edges: map[reader.AdjListKey][]int64{
			{Edge: knows.Key(), Type: info.OrderedBySource}: {1500, 0, 10},
		},
	}
	r, _ := reader.NewAdjListChunkInfoReader(context.Background(), counts, g, "person", "knows", "person", info.OrderedBySource)
	for {
		p, _ := r.GetChunk()
		fmt.Println(p)
		if r.NextChunk() != nil {
			break
		}
	}
	// Output:
	// person_knows_person/ordered_by_source/adj_list/part0/chunk0
	// person_knows_person/ordered_by_source/adj_list/part0/chunk1
	// person_knows_person/ordered_by_source/adj_list/part2/chunk0
}
