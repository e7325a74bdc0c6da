package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/solarlune/armature"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatTree  = "tree"
)

type boneJSON struct {
	Index         int         `json:"index"`
	Name          string      `json:"name"`
	Parent        int         `json:"parent"`
	Local         [16]float32 `json:"local"`
	Translation   [3]float32  `json:"translation"`
	Scale         [3]float32  `json:"scale"`
	WorldPosition [3]float32  `json:"worldPosition"`
	Length        float32     `json:"length"`
	InverseBind   [16]float32 `json:"inverseBind"`
}

type skeletonJSON struct {
	Scene string     `json:"scene"`
	Bones []boneJSON `json:"bones"`
}

func writeSkeleton(w io.Writer, format, sceneName string, skeleton *armature.Skeleton) error {

	world := skeleton.WorldTransforms()
	inverseBind := skeleton.InverseBindTransforms()

	switch format {

	case formatJSON:
		out := skeletonJSON{Scene: sceneName, Bones: make([]boneJSON, skeleton.BoneCount())}
		for i := range out.Bones {
			p := world[i].Position()
			local := skeleton.LocalTransform(i)
			translation, scale, _ := local.Decompose()
			out.Bones[i] = boneJSON{
				Index:         i,
				Name:          skeleton.Name(i),
				Parent:        skeleton.Parent(i),
				Local:         local.ToFloats(),
				Translation:   [3]float32{translation.X, translation.Y, translation.Z},
				Scale:         [3]float32{scale.X, scale.Y, scale.Z},
				WorldPosition: [3]float32{p.X, p.Y, p.Z},
				Length:        skeleton.BoneLength(i),
				InverseBind:   inverseBind[i].ToFloats(),
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case formatTree:
		_, err := io.WriteString(w, skeleton.HierarchyAsString())
		return err

	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "INDEX\tPARENT\tNAME\tWORLD POSITION")
		for i := 0; i < skeleton.BoneCount(); i++ {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", i, skeleton.Parent(i), skeleton.Name(i), world[i].Position())
		}
		return tw.Flush()

	}

}
